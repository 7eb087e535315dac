package database

import (
	"fmt"

	"gorm.io/gorm"
)

// AddIndexes adds performance-critical indexes to the database
func AddIndexes(db *gorm.DB) error {
	indexes := []struct {
		table   string
		name    string
		columns string
	}{
		// Assembly list filters and sort key
		{"armados", "idx_armados_centro_id", "centro_id"},
		{"armados", "idx_armados_tecnico_id", "tecnico_id"},
		{"armados", "idx_armados_estado", "estado"},
		{"armados", "idx_armados_fecha_asignacion", "fecha_asignacion"},

		// Active-participation lookup on transfer
		{"armado_participaciones", "idx_participaciones_armado_id", "armado_id"},
		{"armado_participaciones", "idx_participaciones_fecha_fin", "fecha_fin"},

		// Material replace and box aggregation
		{"armado_materiales", "idx_materiales_armado_id", "armado_id"},

		// Movement feed sort and filters
		{"armado_caja_movimientos", "idx_movimientos_armado_id", "armado_id"},
		{"armado_caja_movimientos", "idx_movimientos_fecha", "fecha"},
		{"armado_caja_movimientos", "idx_movimientos_cantidad", "cantidad"},

		// Site inventory lookup
		{"equipos_ip", "idx_equipos_centro_id", "centro_id"},
	}

	for _, idx := range indexes {
		// Check if index already exists
		var count int64
		err := db.Raw(`
			SELECT COUNT(*)
			FROM pg_indexes
			WHERE tablename = ? AND indexname = ?
		`, idx.table, idx.name).Count(&count).Error

		if err != nil {
			return fmt.Errorf("failed to check index %s: %w", idx.name, err)
		}

		if count > 0 {
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, idx.table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}

		fmt.Printf("Created index %s on %s(%s)\n", idx.name, idx.table, idx.columns)
	}

	return nil
}
