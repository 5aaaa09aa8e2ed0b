// Package capabilities provides the built-in capability, warhead and
// projectile descriptors and registers them with a Composer.
//
// Capability structs map definition fields through `mapstructure` tags. A
// field named "Type" in definitions is mapped onto a differently named Go
// field because Type() is the capability tag.
package capabilities
