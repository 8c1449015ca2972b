// Command dpc runs density peak clustering on a CSV file of points.
//
// Without thresholds it prints the decision graph (density and delta per
// point) so thresholds can be chosen; with -min-density and -min-delta it
// prints the cluster assignment.
package main

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"

	"go.uber.org/zap"

	"github.com/TrevorS/dpc"
	"github.com/TrevorS/dpc/internal/config"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "dpc:", err)
		os.Exit(1)
	}
}

type output struct {
	KernelSize    float64            `json:"kernel_size"`
	MaxDistance   float64            `json:"max_distance"`
	DecisionGraph *dpc.DecisionGraph `json:"decision_graph,omitempty"`
	Assignment    *assignmentJSON    `json:"assignment,omitempty"`
}

type assignmentJSON struct {
	Centers       []int     `json:"centers"`
	NClusters     int       `json:"nclusters"`
	Membership    []int     `json:"membership"`
	BorderDensity []float64 `json:"border_density"`
	HaloIdx       []int     `json:"halo_idx"`
	CoreIdx       []int     `json:"core_idx"`
}

func run(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("dpc", flag.ContinueOnError)
	configPath := fs.String("config", "", "YAML config file")
	input := fs.String("input", "", "headerless CSV file, one point per row (- for stdin)")
	minDensity := fs.String("min-density", "", "density threshold for centers")
	minDelta := fs.String("min-delta", "", "delta threshold for centers")
	borderOnly := fs.Bool("border-only", false, "only downgrade border points to halo")
	rejectOutliers := fs.Bool("reject-outliers", false, "leave well-separated low-density points unassigned")
	decisionGraph := fs.Bool("decision-graph", false, "print the decision graph even when thresholds are given")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *input == "" {
		return errors.New("-input is required")
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg.Environment)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	libCfg, err := cfg.Library()
	if err != nil {
		return err
	}
	libCfg.Logger = logger

	points, err := readPoints(*input)
	if err != nil {
		return err
	}
	logger.Info("loaded points", zap.String("input", *input), zap.Int("n", len(points)))

	c, err := dpc.Cluster(points, libCfg)
	if err != nil {
		return err
	}

	ac := dpc.AssignConfig{
		BorderOnly:     *borderOnly || cfg.Assign.BorderOnly,
		RejectOutliers: *rejectOutliers || cfg.Assign.RejectOutliers,
	}
	haveDensity, err := threshold(*minDensity, cfg.Assign.MinDensity, &ac.MinDensity)
	if err != nil {
		return fmt.Errorf("-min-density: %w", err)
	}
	haveDelta, err := threshold(*minDelta, cfg.Assign.MinDelta, &ac.MinDelta)
	if err != nil {
		return fmt.Errorf("-min-delta: %w", err)
	}
	if haveDensity != haveDelta {
		return errors.New("-min-density and -min-delta must be given together")
	}

	out := output{KernelSize: c.KernelSize, MaxDistance: c.MaxDistance}
	if haveDensity {
		a := c.Assign(ac)
		out.Assignment = &assignmentJSON{
			Centers:       a.Centers,
			NClusters:     a.NClusters,
			Membership:    a.Membership,
			BorderDensity: a.BorderDensity,
			HaloIdx:       a.HaloIdx,
			CoreIdx:       a.CoreIdx,
		}
		logger.Info("assigned", zap.Int("clusters", a.NClusters), zap.Int("halo", len(a.HaloIdx)))
	}
	if !haveDensity || *decisionGraph {
		g := c.DecisionGraph()
		if haveDensity {
			g = g.WithThresholds(ac.MinDensity, ac.MinDelta)
		}
		out.DecisionGraph = &g
	}

	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func newLogger(environment string) (*zap.Logger, error) {
	if environment == "development" {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// threshold resolves a flag value, falling back to the config value.
func threshold(flagValue string, fromConfig *float64, dst *float64) (bool, error) {
	if flagValue != "" {
		v, err := strconv.ParseFloat(flagValue, 64)
		if err != nil {
			return false, err
		}
		*dst = v
		return true, nil
	}
	if fromConfig != nil {
		*dst = *fromConfig
		return true, nil
	}
	return false, nil
}

func readPoints(path string) ([][]float64, error) {
	var r io.Reader = os.Stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}
	return parsePoints(r)
}

// parsePoints reads a headerless numeric CSV. Row lengths are checked by
// dpc.Cluster, not here.
func parsePoints(r io.Reader) ([][]float64, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.Comment = '#'

	var points [][]float64
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return points, nil
		}
		if err != nil {
			return nil, err
		}
		row := make([]float64, len(rec))
		for j, field := range rec {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				line, col := cr.FieldPos(j)
				return nil, fmt.Errorf("line %d column %d: %w", line, col, err)
			}
			row[j] = v
		}
		points = append(points, row)
	}
}
