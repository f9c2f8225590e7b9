package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/rosterhq/roster/internal/model"
)

// seedEmployee is one roster entry in a seed file. Boss names a previously
// listed employee; reporting links are resolved after all rows exist.
type seedEmployee struct {
	FullName string `yaml:"full_name"`
	Position string `yaml:"position"`
	HireDate string `yaml:"hire_date"`
	Salary   int64  `yaml:"salary"`
	Boss     string `yaml:"boss,omitempty"`
}

type seedFile struct {
	Employees []seedEmployee `yaml:"employees"`
}

// demoRoster is the built-in sample used by --demo.
var demoRoster = []seedEmployee{
	{FullName: "Ivan Ivanov", Position: "Developer", HireDate: "2020-01-15", Salary: 100000},
	{FullName: "Petr Petrov", Position: "Manager", HireDate: "2021-05-20", Salary: 150000, Boss: "Ivan Ivanov"},
	{FullName: "Sidor Sidorov", Position: "Analyst", HireDate: "2022-03-10", Salary: 120000, Boss: "Petr Petrov"},
	{FullName: "Anna Annova", Position: "Developer", HireDate: "2023-08-05", Salary: 110000, Boss: "Ivan Ivanov"},
	{FullName: "Maria Marinova", Position: "Tester", HireDate: "2024-01-10", Salary: 90000, Boss: "Petr Petrov"},
}

func newSeedCmd() *cobra.Command {
	var (
		file string
		demo bool
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load employees into the roster",
		Long:  "Insert employees from a YAML seed file, or load the built-in demo roster.",
		Example: `  roster seed --file employees.yaml
  roster seed --demo`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if demo == (file != "") {
				return fmt.Errorf("provide exactly one of --file or --demo")
			}
			return runSeed(file, demo)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "YAML seed file")
	cmd.Flags().BoolVar(&demo, "demo", false, "Load the built-in demo roster")

	return cmd
}

func runSeed(file string, demo bool) error {
	entries := demoRoster
	if !demo {
		data, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("read seed file: %w", err)
		}
		var sf seedFile
		if err := yaml.Unmarshal(data, &sf); err != nil {
			return fmt.Errorf("parse seed file: %w", err)
		}
		if len(sf.Employees) == 0 {
			return fmt.Errorf("seed file %q contains no employees", file)
		}
		entries = sf.Employees
	}

	st, err := openStore()
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	ctx := context.Background()

	// First pass: insert everyone without reporting links.
	ids := make(map[string]int64, len(entries))
	for _, e := range entries {
		emp, err := st.CreateEmployee(ctx, model.EmployeeInput{
			FullName: e.FullName,
			Position: e.Position,
			HireDate: e.HireDate,
			Salary:   e.Salary,
		})
		if err != nil {
			return fmt.Errorf("create %q: %w", e.FullName, err)
		}
		ids[e.FullName] = emp.ID
	}

	// Second pass: wire up bosses by name.
	linked := 0
	for _, e := range entries {
		if e.Boss == "" {
			continue
		}
		bossID, ok := ids[e.Boss]
		if !ok {
			return fmt.Errorf("employee %q references unknown boss %q", e.FullName, e.Boss)
		}
		if _, err := st.UpdateEmployee(ctx, ids[e.FullName], model.EmployeeInput{
			FullName: e.FullName,
			Position: e.Position,
			HireDate: e.HireDate,
			Salary:   e.Salary,
			BossID:   &bossID,
		}); err != nil {
			return fmt.Errorf("link %q to %q: %w", e.FullName, e.Boss, err)
		}
		linked++
	}

	fmt.Printf("Seeded %d employees (%d reporting links)\n", len(entries), linked)
	return nil
}
