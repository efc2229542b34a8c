package cmd

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/rogersnm/roster/internal/model"
	"github.com/rogersnm/roster/internal/store"
)

func parseID(s string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q: must be a positive integer", s)
	}
	return id, nil
}

func parseSalary(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, fmt.Errorf("invalid salary %q: must be a number", s)
	}
	return v, nil
}

// activeEmployee returns the active record with the given id.
func activeEmployee(id int) (model.Employee, error) {
	e, ok := st.FindByID(id)
	if !ok || !e.Active {
		return model.Employee{}, fmt.Errorf("%w: id %d", store.ErrNotFound, id)
	}
	return e, nil
}
