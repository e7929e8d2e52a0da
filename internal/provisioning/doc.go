// Package provisioning implements the container provisioning pipeline.
//
// A provisioning run is a strictly sequential chain of phases:
//
//   - ValidationPhase checks bridge, storage space, and template
//     availability before anything is mutated
//   - ContainerPhase allocates a VMID and issues the single create call
//   - ReadinessPhase starts the container and polls for its address
//   - AppStackPhase installs and configures the application stack inside
//     the container
//
// This root package contains the shared Context, State, Phase, and
// Observer types plus the sequential phase runner. Teardown lives in the
// destroy subpackage; the provision handler owns the container handle and
// guarantees teardown on any non-success exit path.
package provisioning
