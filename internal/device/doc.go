// Package device provides host-backed implementations of the vaultgate
// collaborator interfaces for demo binaries.
//
// # Components
//
//   - [HostProbe]: capability detection from platform identity and device nodes.
//   - [ScriptedChallenger]: biometric prompt stand-in replaying fixed outcomes.
//   - [FileCamera] and [StaticFrameCamera]: camera stand-ins reading a file or
//     a fixed in-memory frame.
//
// # What this package must NOT do
//
//   - Talk to real biometric or camera hardware.
//   - Call back into the orchestrator from a collaborator method.
package device
