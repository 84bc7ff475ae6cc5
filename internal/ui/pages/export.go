package pages

import (
	"time"

	"github.com/templui/scheduletable/internal/grid"
)

type ExportProps struct {
	View        grid.View
	GeneratedAt time.Time
}
