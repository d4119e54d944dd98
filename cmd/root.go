package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	sim "github.com/infusion-sim/infusion-sim/sim"
	"github.com/infusion-sim/infusion-sim/sim/scenario"
	"github.com/infusion-sim/infusion-sim/sim/trace"
)

var (
	configPath   string  // Drug/threshold configuration YAML (empty = embedded defaults)
	patientPath  string  // Patient profile YAML (empty = built-in demo patient)
	scenarioPath string  // Scenario spec YAML for synthetic vitals
	replayPath   string  // CSV vitals trace; takes precedence over --scenario
	dtSeconds    float64 // Tick duration override (0 = scenario's dt_seconds)
	seed         int64   // Seed override for synthetic vitals generation
	logLevel     string  // Log verbosity level
	traceOut     string  // JSONL intervention trace output path
)

// envOverrides lets a deployment pin config location and verbosity without
// editing invocations. Explicit flags still win.
type envOverrides struct {
	Config string `env:"INFUSION_SIM_CONFIG"`
	Log    string `env:"INFUSION_SIM_LOG"`
}

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "infusion-sim",
	Short: "Closed-loop supervision engine for simulated multimodal drug infusions",
}

// runCmd drives a full supervision run: protocol initialization, then one
// controller tick per scenario reading.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the closed-loop supervision simulation",
	Run: func(cmd *cobra.Command, args []string) {
		applyEnvOverrides(cmd)

		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		cfg := loadConfig()
		patient := loadPatient()

		ctrl, err := sim.NewController(patient, cfg)
		if err != nil {
			logrus.Fatalf("Controller initialization failed: %v", err)
		}
		printProtocol(ctrl)

		readings, dt := loadVitals(cmd)
		logrus.Infof("Starting supervision run %s: %d ticks, dt=%s", ctrl.RunID(), len(readings), dt)

		metrics := sim.NewRunMetrics()
		runTrace := trace.NewRunTrace()
		prevStatus := sim.Green
		for _, v := range readings {
			before := ctrl.Rates()
			rep := ctrl.Tick(v, dt)
			metrics.Observe(rep, patient.WeightKg, dt.Minutes())
			recordTick(runTrace, rep, before, prevStatus)
			for _, rule := range rep.Rules {
				logrus.Warnf("[tick %04d] %s: %s", rep.Tick, rule.Name, rule.Reason)
			}
			logrus.Infof("[tick %04d] %s status=%s", rep.Tick, rep.Vitals, rep.Status)
			prevStatus = rep.Status
		}

		metrics.Print()
		if traceOut != "" {
			writeTrace(runTrace, traceOut)
		}
		logrus.Info("Supervision run complete.")
	},
}

func applyEnvOverrides(cmd *cobra.Command) {
	var ov envOverrides
	if err := env.Parse(&ov); err != nil {
		logrus.Fatalf("Failed to parse environment overrides: %v", err)
	}
	if ov.Config != "" && !cmd.Flags().Changed("config") {
		configPath = ov.Config
	}
	if ov.Log != "" && !cmd.Flags().Changed("log") {
		logLevel = ov.Log
	}
}

func loadConfig() *sim.Config {
	if configPath == "" {
		cfg, err := DefaultConfig()
		if err != nil {
			logrus.Fatalf("Embedded default config is broken: %v", err)
		}
		return cfg
	}
	cfg, err := sim.LoadConfig(configPath)
	if err != nil {
		logrus.Fatalf("Failed to load config %s: %v", configPath, err)
	}
	return cfg
}

func loadPatient() sim.Patient {
	if patientPath == "" {
		return defaultPatient()
	}
	p, err := sim.LoadPatient(patientPath)
	if err != nil {
		logrus.Fatalf("Failed to load patient profile %s: %v", patientPath, err)
	}
	return p
}

// loadVitals resolves the vitals source: CSV replay wins over a scenario
// spec, which wins over the embedded demo scenario.
func loadVitals(cmd *cobra.Command) ([]sim.Vitals, time.Duration) {
	if replayPath != "" {
		readings, err := scenario.LoadVitalsCSV(replayPath)
		if err != nil {
			logrus.Fatalf("Failed to replay vitals trace %s: %v", replayPath, err)
		}
		if dtSeconds <= 0 {
			dtSeconds = 60
		}
		return readings, time.Duration(dtSeconds * float64(time.Second))
	}

	var spec *scenario.Spec
	var err error
	if scenarioPath != "" {
		spec, err = scenario.LoadSpec(scenarioPath)
		if err != nil {
			logrus.Fatalf("Failed to load scenario %s: %v", scenarioPath, err)
		}
	} else {
		spec, err = DefaultScenario()
		if err != nil {
			logrus.Fatalf("Embedded demo scenario is broken: %v", err)
		}
	}
	if cmd.Flags().Changed("seed") {
		spec.Seed = seed
	}
	if dtSeconds > 0 {
		spec.DtSeconds = dtSeconds
	}

	gen := scenario.NewGenerator(spec)
	readings := make([]sim.Vitals, 0, spec.TotalTicks())
	for {
		v, ok := gen.Next()
		if !ok {
			break
		}
		readings = append(readings, v)
	}
	return readings, time.Duration(spec.DtSeconds * float64(time.Second))
}

func printProtocol(ctrl *sim.Controller) {
	protocol := ctrl.Protocol()
	fmt.Println("=== Starting Protocol ===")
	for _, drug := range ctrl.Lockouts().Drugs() {
		fmt.Printf("LOCKED  %-17s: %s\n", drug, protocol.Lockouts[drug])
	}
	for drug, rate := range protocol.Rates {
		fmt.Printf("Rate    %-17s: %.3f\n", drug, rate)
	}
	for drug, note := range protocol.Adjuncts {
		fmt.Printf("Adjunct %-17s: %s\n", drug, note)
	}
}

// recordTick converts a tick report into trace records: one intervention per
// rule-affected drug, plus a status-change record on transitions.
func recordTick(rt *trace.RunTrace, rep sim.TickReport, before sim.InfusionState, prevStatus sim.Severity) {
	for _, rule := range rep.Rules {
		for _, drug := range rule.Drugs {
			rt.RecordIntervention(trace.InterventionRecord{
				RunID:      rep.RunID.String(),
				Tick:       rep.Tick,
				Rule:       rule.Name,
				Severity:   rule.Severity.String(),
				Drug:       drug,
				RateBefore: before[drug],
				RateAfter:  rep.Infusions[drug],
				Reason:     rule.Reason,
			})
		}
	}
	if rep.Status != prevStatus {
		rt.RecordStatusChange(trace.StatusChange{
			RunID: rep.RunID.String(),
			Tick:  rep.Tick,
			From:  prevStatus.String(),
			To:    rep.Status.String(),
		})
	}
}

func writeTrace(rt *trace.RunTrace, path string) {
	f, err := os.Create(path)
	if err != nil {
		logrus.Fatalf("Failed to create trace file %s: %v", path, err)
	}
	defer f.Close()
	if err := rt.WriteJSONL(f); err != nil {
		logrus.Fatalf("Failed to write trace file %s: %v", path, err)
	}
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	runCmd.Flags().StringVar(&configPath, "config", "", "Drug/threshold configuration YAML (default: embedded)")
	runCmd.Flags().StringVar(&patientPath, "patient", "", "Patient profile YAML (default: built-in demo patient)")
	runCmd.Flags().StringVar(&scenarioPath, "scenario", "", "Scenario spec YAML for synthetic vitals")
	runCmd.Flags().StringVar(&replayPath, "replay", "", "CSV vitals trace to replay (overrides --scenario)")
	runCmd.Flags().Float64Var(&dtSeconds, "dt-seconds", 0, "Tick duration in seconds (default: scenario's dt_seconds)")
	runCmd.Flags().Int64Var(&seed, "seed", 42, "Seed for synthetic vitals generation")
	runCmd.Flags().StringVar(&logLevel, "log", "info", "Log level (trace, debug, info, warn, error, fatal, panic)")
	runCmd.Flags().StringVar(&traceOut, "trace-out", "", "Write JSONL intervention trace to this path")

	rootCmd.AddCommand(runCmd)
}
