// Package classes implements a class-based object runtime for Go hosts.
// It provides the pieces a dynamic host environment needs to layer classes
// on top of a kind-tagged value model:
//   - Class descriptors with single inheritance rooted at an explicit
//     sentinel class, holding separate instance and class method registries.
//   - Instance allocation with constructor chaining: `new` walks the
//     ancestor chain for the nearest `init` and invokes it with self bound
//     to the fresh instance.
//   - Method dispatch along the ancestor chain for instance and class
//     calls, with super delegation through an immutable per-level proxy
//     chain that preserves instance identity for field access.
//   - Ancestry queries via InstanceOf.
//
// Methods are host-supplied Go callables. The runtime enforces a simple
// step quota and recursion cap per boundary call, rejecting work that
// exceeds configured execution limits.
package classes
