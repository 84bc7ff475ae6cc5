package pages

// AlertsID is the container for out-of-band alerts such as failed deletes.
const AlertsID = "alerts"

type ScheduleProps struct {
	Form FormState
	Grid GridProps
}
