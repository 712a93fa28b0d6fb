package scene

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// SupportedAPIRange is the host API version range this engine works with.
const SupportedAPIRange = ">= 1.0.0, < 3.0.0"

// Capability names a host routine the pipeline depends on.
type Capability string

// Capabilities required before a batch run may start.
const (
	CapabilityGraph    Capability = "graph"
	CapabilityMesh     Capability = "mesh-editor"
	CapabilityImporter Capability = "importer"
	CapabilitySaver    Capability = "saver"
)

// ErrMissingCapability is wrapped by CheckCapabilities when one or more
// required host routines are absent.
var ErrMissingCapability = errors.New("host is missing required capabilities")

// ErrIncompatibleAPI is wrapped when the host API version falls outside
// the supported range.
var ErrIncompatibleAPI = errors.New("host API version incompatible")

// CheckCapabilities validates once, before a run, that the host provides
// every routine in required and that its API version satisfies
// SupportedAPIRange. The returned error enumerates all missing routines
// rather than stopping at the first, so the operator sees the full list.
func CheckCapabilities(h Host, required []Capability) error {
	if h == nil {
		return fmt.Errorf("%w: no host supplied", ErrMissingCapability)
	}

	var missing []string
	for _, c := range required {
		switch c {
		case CapabilityGraph:
			if h.Graph() == nil {
				missing = append(missing, string(c))
			}
		case CapabilityMesh:
			if h.Mesh() == nil {
				missing = append(missing, string(c))
			}
		case CapabilityImporter:
			if h.Importer() == nil {
				missing = append(missing, string(c))
			}
		case CapabilitySaver:
			if h.Saver() == nil {
				missing = append(missing, string(c))
			}
		default:
			missing = append(missing, string(c))
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingCapability, strings.Join(missing, ", "))
	}

	return checkAPIVersion(h.APIVersion())
}

// checkAPIVersion parses the host version and matches it against the
// supported range.
func checkAPIVersion(version string) error {
	v, err := semver.NewVersion(version)
	if err != nil {
		return fmt.Errorf("%w: cannot parse host API version %q: %w", ErrIncompatibleAPI, version, err)
	}

	constraint, err := semver.NewConstraint(SupportedAPIRange)
	if err != nil {
		return fmt.Errorf("parsing supported range: %w", err)
	}

	if !constraint.Check(v) {
		return fmt.Errorf("%w: host reports %s, supported range is %s", ErrIncompatibleAPI, version, SupportedAPIRange)
	}
	return nil
}
