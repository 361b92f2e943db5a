package checks

import (
	"fmt"
	"strings"
	"sync"

	"order-reconciler/core/database"

	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// SchemaReport is the result of comparing a model with its table.
type SchemaReport struct {
	Table          string   `json:"table"`
	Matched        bool     `json:"matched"`
	MissingColumns []string `json:"missing_columns"`
	TypeMismatches []string `json:"type_mismatches"`
}

// CheckSchema verifies that the table of model has every column the model
// maps. Column types are compared only for fields with an explicit type tag.
func CheckSchema(db *gorm.DB, model interface{}) (*SchemaReport, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}

	s, err := schema.Parse(model, &sync.Map{}, db.NamingStrategy)
	if err != nil {
		return nil, fmt.Errorf("failed to parse model: %w", err)
	}

	actual, err := database.GetTableColumns(db, s.Table)
	if err != nil {
		return nil, err
	}
	byName := make(map[string]database.ColumnInfo, len(actual))
	for _, col := range actual {
		byName[col.Field] = col
	}

	report := &SchemaReport{
		Table:          s.Table,
		Matched:        true,
		MissingColumns: []string{},
		TypeMismatches: []string{},
	}
	for _, field := range s.Fields {
		if field.DBName == "" {
			continue
		}

		col, ok := byName[strings.ToLower(field.DBName)]
		if !ok {
			report.MissingColumns = append(report.MissingColumns, field.DBName)
			report.Matched = false
			continue
		}

		want := strings.ToLower(field.TagSettings["TYPE"])
		if want != "" && !strings.Contains(col.Type, want) {
			report.TypeMismatches = append(report.TypeMismatches,
				fmt.Sprintf("%s: expected %s, got %s", field.DBName, want, col.Type))
			report.Matched = false
		}
	}
	return report, nil
}
