package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"teamcap/internal/app"
	"teamcap/internal/capacity"
)

const banner = `
=====================================================
|                     teamcap                       |
|        team capacity from the HR directory        |
=====================================================
`

const menuText = `1. Calculate capacity
2. Who is available today
3. Who is out of office today
4. Get available employees for date range
5. Exit
-----------------------------------------------------`

// runMenu drives the interactive loop. Errors from a single action print one
// line and return to the menu; only EOF or the exit option leave the loop.
func runMenu(ctx context.Context, a *app.App, in io.Reader, out io.Writer) {
	scanner := bufio.NewScanner(in)
	prompt := func(label string) (string, bool) {
		fmt.Fprint(out, label)
		if !scanner.Scan() {
			return "", false
		}
		return strings.TrimSpace(scanner.Text()), true
	}

	fmt.Fprint(out, banner)
	for {
		fmt.Fprintln(out, menuText)
		option, ok := prompt("Pick one option: ")
		if !ok {
			return
		}

		switch option {
		case "1":
			start, ok := prompt("Enter start date (YYYY-MM-DD): ")
			if !ok {
				return
			}
			end, ok := prompt("Enter end date (YYYY-MM-DD): ")
			if !ok {
				return
			}
			sectorInput, ok := prompt("Enter sector(s) (BE, FE, QA separated by commas, empty for all): ")
			if !ok {
				return
			}
			factorInput, ok := prompt("Enter focus factor (0.75-1.00, empty for default): ")
			if !ok {
				return
			}

			factor := 0.0
			if factorInput != "" {
				parsed, err := strconv.ParseFloat(factorInput, 64)
				if err != nil {
					fmt.Fprintf(out, "Invalid focus factor: %v\n", err)
					continue
				}
				factor = parsed
			}

			result, err := a.CalculateCapacity(ctx, start, end, factor, splitSectors(sectorInput))
			if err != nil {
				fmt.Fprintf(out, "Error calculating capacity: %v\n", err)
				continue
			}
			fmt.Fprintf(out, "Sprint capacity: %.1f hours\n", result.Hours)

		case "2":
			today := a.Today()
			result, err := a.AvailableEmployees(ctx, today, today, nil, false)
			if err != nil {
				fmt.Fprintf(out, "Error resolving availability: %v\n", err)
				continue
			}
			fprintEmployees(out, result.Employees)

		case "3":
			today := a.Today()
			records, err := a.WhosOut(ctx, today, today)
			if err != nil {
				fmt.Fprintf(out, "Error resolving who is out: %v\n", err)
				continue
			}
			fprintOutOfOffice(out, records)

		case "4":
			start, ok := prompt("Enter start date (YYYY-MM-DD): ")
			if !ok {
				return
			}
			end, ok := prompt("Enter end date (YYYY-MM-DD): ")
			if !ok {
				return
			}
			result, err := a.AvailableEmployees(ctx, start, end, nil, false)
			if err != nil {
				fmt.Fprintf(out, "Error resolving availability: %v\n", err)
				continue
			}
			fprintEmployees(out, result.Employees)

		case "5":
			fmt.Fprintln(out, "Goodbye!")
			return

		default:
			fmt.Fprintln(out, "Invalid option. Please try again.")
		}
	}
}

func splitSectors(input string) []string {
	if input == "" {
		return nil
	}
	parts := strings.Split(input, ",")
	sectors := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			sectors = append(sectors, s)
		}
	}
	return sectors
}

// fprintEmployees writes the tabular name | job title | sector listing.
func fprintEmployees(out io.Writer, employees []capacity.Employee) {
	const nameWidth, titleWidth, sectorWidth = 32, 37, 10
	total := nameWidth + titleWidth + sectorWidth + 6

	fmt.Fprintf(out, "%-*s | %-*s | %-*s\n", nameWidth, "Name", titleWidth, "Job Title", sectorWidth, "Sector")
	fmt.Fprintln(out, strings.Repeat("=", total))
	for _, emp := range employees {
		fmt.Fprintf(out, "%-*s | %-*s | %-*s\n",
			nameWidth, emp.DisplayName, titleWidth, emp.JobTitle, sectorWidth, emp.Sector)
		fmt.Fprintln(out, strings.Repeat("-", total))
	}
	fmt.Fprintf(out, "%d employee(s)\n", len(employees))
}

func fprintOutOfOffice(out io.Writer, records []capacity.OutOfOffice) {
	fmt.Fprintf(out, "%-12s | %-10s | %-10s | %-10s\n", "Employee ID", "Type", "Start", "End")
	fmt.Fprintln(out, strings.Repeat("=", 53))
	for _, rec := range records {
		id := "-"
		if rec.EmployeeID != 0 {
			id = strconv.FormatInt(rec.EmployeeID, 10)
		}
		fmt.Fprintf(out, "%-12s | %-10s | %-10s | %-10s\n",
			id, rec.Type,
			rec.Start.Format(capacity.DateLayout), rec.End.Format(capacity.DateLayout))
	}
	fmt.Fprintf(out, "%d record(s)\n", len(records))
}

func printEmployees(employees []capacity.Employee) {
	fprintEmployees(os.Stdout, employees)
}

func printOutOfOffice(records []capacity.OutOfOffice) {
	fprintOutOfOffice(os.Stdout, records)
}
