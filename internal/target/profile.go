// Package target resolves a PHP version tag into the capabilities the
// property binder needs.
package target

import (
	"github.com/Masterminds/semver/v3"

	"github.com/cmmoran/wsdlphpgen/internal/errors"
)

// TypedPropertiesConstraint is the first PHP release with typed properties
// and nullable property types.
const TypedPropertiesConstraint = ">= 7.4"

// DefaultVersion is used when no version tag is configured.
const DefaultVersion = "7.4"

// Profile describes one target runtime.
type Profile struct {
	Version               *semver.Version
	NativeTypedProperties bool
}

// Resolve parses versionTag ("7.4", "8.1.2", "v8") into a Profile.
func Resolve(versionTag string) (Profile, error) {
	if versionTag == "" {
		versionTag = DefaultVersion
	}
	v, err := semver.NewVersion(versionTag)
	if err != nil {
		return Profile{}, errors.WithHint(
			errors.InvalidConfig(err, "php version "+versionTag),
			"use a version such as 7.3, 7.4 or 8.2",
		)
	}
	c, err := semver.NewConstraint(TypedPropertiesConstraint)
	if err != nil {
		return Profile{}, errors.InvalidConfig(err, "typed properties constraint")
	}
	return Profile{
		Version:               v,
		NativeTypedProperties: c.Check(v),
	}, nil
}

func (p Profile) String() string {
	if p.Version == nil {
		return "php"
	}
	return "php " + p.Version.String()
}
