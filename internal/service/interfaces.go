package service

import "github.com/alexanderramin/normgate/internal/app"

// AssessmentService runs the gate and its auxiliary scorers.
type AssessmentService interface {
	app.AssessUseCase
	app.ExtractUseCase
	app.IntentUseCase
	app.ImpactUseCase
	app.DiagnoseUseCase
}

type HistoryService interface {
	app.HistoryUseCase
}
