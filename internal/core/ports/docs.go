// Package ports defines the contracts between the order processor and its
// side-effecting collaborators. Each interface exposes a single operation so a
// caller depends only on the capability it uses; adapters under
// internal/adapters/out implement them.
package ports
