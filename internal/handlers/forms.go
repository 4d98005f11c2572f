package handlers

import (
	"math"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"fittrack/internal/services"
)

// componentForm collects "components[i][field]" keys into inputs ordered by index.
// Rows without a food item or category are skipped, as the add-meal form leaves blank rows.
func componentForm(form url.Values) ([]services.ComponentInput, error) {
	rows := map[int]map[string]string{}
	for key, vals := range form {
		rest, ok := strings.CutPrefix(key, "components[")
		if !ok || len(vals) == 0 {
			continue
		}
		idx, field, ok := strings.Cut(rest, "][")
		if !ok {
			continue
		}
		i, err := strconv.Atoi(idx)
		if err != nil {
			continue
		}
		field = strings.TrimSuffix(field, "]")
		if rows[i] == nil {
			rows[i] = map[string]string{}
		}
		rows[i][field] = strings.TrimSpace(vals[0])
	}

	indexes := make([]int, 0, len(rows))
	for i := range rows {
		indexes = append(indexes, i)
	}
	sort.Ints(indexes)

	out := make([]services.ComponentInput, 0, len(indexes))
	for _, i := range indexes {
		row := rows[i]
		if row["food_item"] == "" || row["category"] == "" {
			continue
		}
		in := services.ComponentInput{FoodItem: row["food_item"], Category: row["category"], Unit: row["unit"]}
		var err error
		if in.Quantity, err = formFloat(row["quantity"], i, "quantity"); err != nil {
			return nil, err
		}
		if in.Calories, err = formFloat(row["calories"], i, "calories"); err != nil {
			return nil, err
		}
		if in.Protein, err = formOptionalFloat(row["protein"], i, "protein"); err != nil {
			return nil, err
		}
		if in.Carbs, err = formOptionalFloat(row["carbs"], i, "carbs"); err != nil {
			return nil, err
		}
		if in.Fat, err = formOptionalFloat(row["fat"], i, "fat"); err != nil {
			return nil, err
		}
		out = append(out, in)
	}
	return out, nil
}

func componentFieldError(i int, field string) error {
	key := "components[" + strconv.Itoa(i) + "][" + field + "]"
	return &services.ValidationError{Message: "Invalid meal component", Fields: map[string]string{key: "Must be a number"}}
}

func formFloat(s string, i int, field string) (float64, error) {
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, componentFieldError(i, field)
	}
	return v, nil
}

func formOptionalFloat(s string, i int, field string) (*float64, error) {
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil, componentFieldError(i, field)
	}
	return &v, nil
}

func optionalText(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// parseForm bounds the body before parsing; every form here is small.
func parseForm(w http.ResponseWriter, r *http.Request) error {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	return r.ParseForm()
}
