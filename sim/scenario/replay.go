package scenario

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	sim "github.com/infusion-sim/infusion-sim/sim"
)

// LoadVitalsCSV replays a recorded vitals trace. Expected columns:
// time_sec,hr,map,rr,sbp with a header row. Readings are returned in file
// order; any parse failure is an error (a malformed row is never skipped,
// since a silently dropped reading could hide an unsafe episode).
func LoadVitalsCSV(path string) ([]sim.Vitals, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening vitals trace: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	if _, err := reader.Read(); err != nil {
		return nil, fmt.Errorf("reading vitals trace header: %w", err)
	}

	var readings []sim.Vitals
	row := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading vitals trace row %d: %w", row, err)
		}
		if len(record) < 5 {
			return nil, fmt.Errorf("vitals trace row %d: want 5 columns, got %d", row, len(record))
		}
		fields := make([]float64, 4)
		for i := 0; i < 4; i++ {
			v, err := strconv.ParseFloat(record[i+1], 64)
			if err != nil {
				return nil, fmt.Errorf("vitals trace row %d column %d: %w", row, i+1, err)
			}
			fields[i] = v
		}
		readings = append(readings, sim.Vitals{
			HeartRate: fields[0],
			MAP:       fields[1],
			RespRate:  fields[2],
			SBP:       fields[3],
		})
		row++
	}
	return readings, nil
}
