// Package plugin adapts the effect kernels to a host plugin lifecycle.
//
// A host looks a [Descriptor] up in a [Registry], creates an [Instance]
// with [Instantiate], binds buffers with [Instance.ConnectPort], and then
// drives it with Activate, Run (once per block), Deactivate and Cleanup.
//
// Every descriptor exposes the same four audio ports followed by its
// controls:
//
//	0  input left
//	1  input right
//	2  output left
//	3  output right
//	4+ controls, in descriptor order
//
// A control port is bound to a slice whose first element holds the value.
// Run reads each control once per block and clamps it to the port's
// [Hint] before configuring the kernel.
//
// Setup calls return errors; Run never fails, allocates or logs.
package plugin
