package metric

import (
	"bytes"
	"sort"

	"github.com/go-logfmt/logfmt"
)

// Name identifies a metric emitted by a noise source monitor.  By convention the name ends in the
// metric type, such as min_entropy_gauge or rct_failure_count.  Metadata qualifies the name with
// the source it was measured on so that metrics from multiple noise sources can be distinguished.
// Names render as the bare name followed by logfmt metadata in sorted key order, e.g.
// min_entropy_gauge[source=hwrng]
type Name struct {
	name string
	md   map[string]string
}

// NewName returns a new name with the associated metadata
func NewName(name string, md map[string]string) Name {
	return Name{name: name, md: md}
}

// NewNameFrom returns a deep copy of an existing name so that callers can add metadata without
// mutating the original.  Health tests use this to emit per-value metrics under one shared
// source identity.
func NewNameFrom(n Name) Name {
	md := make(map[string]string, len(n.md))
	for k, v := range n.md {
		md[k] = v
	}
	return NewName(n.name, md)
}

// AddMetadata upserts additional metadata into the name
func (n Name) AddMetadata(md map[string]string) {
	for k, v := range md {
		n.md[k] = v
	}
}

// String renders the name and its metadata, such as rct_failure_count[source=hwrng test=rct]
func (n Name) String() string {
	if len(n.md) == 0 {
		return n.name
	}

	keys := make([]string, 0, len(n.md))
	for k := range n.md {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b bytes.Buffer
	b.WriteString(n.name)
	b.WriteString("[")
	e := logfmt.NewEncoder(&b)
	for _, k := range keys {
		if err := e.EncodeKeyval(k, n.md[k]); err != nil {
			// a pair logfmt cannot encode is skipped rather than corrupting
			// the rendered name
			continue
		}
	}
	b.WriteString("]")
	return b.String()
}
