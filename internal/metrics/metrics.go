/*
Copyright 2025 The llm-d Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package metrics records matcher activity as Prometheus metrics and writes
// them in the text exposition format, e.g. for the node exporter textfile
// collector.
package metrics

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"

	"github.com/llm-d/llm-d-stable-matcher/pkg/core"
	"github.com/llm-d/llm-d-stable-matcher/pkg/solver"
)

const namespace = "matcher"

// ResultSolved is the result label of a successful solve; failures carry their error code.
const ResultSolved = "solved"

// Recorder is a solver.Observer that counts solve events. It is safe for
// concurrent use by several problems.
type Recorder struct {
	advances      prometheus.Counter
	displacements *prometheus.CounterVec
	fallbacks     prometheus.Counter
	duration      prometheus.Histogram
	steps         prometheus.Histogram
	solves        *prometheus.CounterVec
}

var _ solver.Observer = (*Recorder)(nil)

// NewRecorder creates a Recorder and registers its collectors with reg.
func NewRecorder(reg prometheus.Registerer) (*Recorder, error) {
	r := &Recorder{
		advances: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "advances_total",
			Help:      "Number of times a student proposed to the next school on its list.",
		}),
		displacements: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "displacements_total",
			Help:      "Number of students returned to the unmatched pool, by reason.",
		}, []string{"reason"}),
		fallbacks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fallback_lists_total",
			Help:      "Number of students whose explicit preferences ran out and got a generated list.",
		}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "solve_duration_seconds",
			Help:      "Wall time of one solve.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 10),
		}),
		steps: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "solve_steps",
			Help:      "Advances performed by one solve.",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 10),
		}),
		solves: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "solves_total",
			Help:      "Number of instances processed, by final result (solved or the error code).",
		}, []string{"result"}),
	}
	for _, c := range []prometheus.Collector{r.advances, r.displacements, r.fallbacks, r.duration, r.steps, r.solves} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("registering matcher metrics: %w", err)
		}
	}
	return r, nil
}

func (r *Recorder) Advanced(*core.Student, *core.School) {
	r.advances.Inc()
}

func (r *Recorder) Displaced(_ *core.Student, _ *core.School, reason solver.DisplacementReason) {
	r.displacements.WithLabelValues(string(reason)).Inc()
}

func (r *Recorder) FallbackGenerated(*core.Student) {
	r.fallbacks.Inc()
}

// Finished observes the duration and length of a solve. The outcome of the
// instance is counted separately by RecordResult.
func (r *Recorder) Finished(steps int, elapsed time.Duration, _ error) {
	r.duration.Observe(elapsed.Seconds())
	r.steps.Observe(float64(steps))
}

// RecordResult counts one processed instance by its final outcome: solved
// only when loading, solving, verification and reporting all succeeded.
func (r *Recorder) RecordResult(err error) {
	result := ResultSolved
	if err != nil {
		result = core.CanonicalCode(err)
	}
	r.solves.WithLabelValues(result).Inc()
}

// Write encodes everything g gathers to w in the text exposition format.
func Write(w io.Writer, g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return fmt.Errorf("gathering metrics: %w", err)
	}
	enc := expfmt.NewEncoder(w, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, mf := range families {
		if err := enc.Encode(mf); err != nil {
			return fmt.Errorf("encoding %s: %w", mf.GetName(), err)
		}
	}
	return nil
}

// WriteTextfile writes the metrics gathered by g to path. The file is replaced
// atomically so a concurrent reader never sees a partial file.
func WriteTextfile(path string, g prometheus.Gatherer) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating metrics file: %w", err)
	}
	defer func() {
		if err != nil {
			err = errors.Join(err, os.Remove(tmp.Name()))
		}
	}()

	if err := Write(tmp, g); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing metrics file: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("setting metrics file mode: %w", err)
	}
	return os.Rename(tmp.Name(), path)
}
