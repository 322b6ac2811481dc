package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// WriteToTextfile writes every metric in the collector's registry to path in
// the Prometheus text format, for pickup by a node_exporter textfile
// collector. The file is replaced atomically.
func (c *Collector) WriteToTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, c.registry); err != nil {
		return fmt.Errorf("failed to write metrics to %q: %w", path, err)
	}
	return nil
}
