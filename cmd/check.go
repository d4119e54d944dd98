package cmd

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	sim "github.com/infusion-sim/infusion-sim/sim"
)

// checkCmd runs the preoperative constraint check only: lockouts, per-drug
// advisory messages, and the calculated starting protocol, without starting
// the monitoring loop.
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Compute lockouts and starting protocol for a patient, without simulating",
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

		fmt.Println("=== Preoperative Check ===")
		for _, drug := range cfg.DrugNames() {
			allowed, msg := ctrl.CheckDrug(drug)
			verdict := "ALLOWED"
			if !allowed {
				verdict = "BLOCKED"
			}
			fmt.Printf("%-7s %-17s: %s\n", verdict, drug, msg)
		}
		printProtocol(ctrl)
	},
}

func init() {
	checkCmd.Flags().StringVar(&configPath, "config", "", "Drug/threshold configuration YAML (default: embedded)")
	checkCmd.Flags().StringVar(&patientPath, "patient", "", "Patient profile YAML (default: built-in demo patient)")
	checkCmd.Flags().StringVar(&logLevel, "log", "warn", "Log level")

	rootCmd.AddCommand(checkCmd)
}
