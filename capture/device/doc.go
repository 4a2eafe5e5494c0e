// SPDX-License-Identifier: EPL-2.0

// Package device provides real capture.Provider implementations: a silent
// virtual microphone for headless runs, the default PortAudio input device,
// and a provider that denies every request.
package device
