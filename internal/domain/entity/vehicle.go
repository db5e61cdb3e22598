package entity

import (
	"strings"
	"time"
)

// Vehicle katalogdagi bitta mashina (startda yuklanadi, keyin o'zgarmaydi)
type Vehicle struct {
	ChassisCode string `json:"chassis_code" yaml:"chassis_code"`
	ModelName   string `json:"model_name" yaml:"model_name"`
	Color       string `json:"color" yaml:"color"`
	ModelYear   int    `json:"model_year" yaml:"model_year"`
}

const (
	UnknownModelName = "UNKNOWN"
	UnknownColor     = "-"
)

// UnknownVehicle katalogda yo'q chassis uchun sentinel mashina
func UnknownVehicle(chassisCode string) Vehicle {
	return Vehicle{
		ChassisCode: NormalizeChassis(chassisCode),
		ModelName:   UnknownModelName,
		Color:       UnknownColor,
		ModelYear:   0,
	}
}

// IsUnknown reports whether v is the sentinel built by UnknownVehicle.
func (v Vehicle) IsUnknown() bool {
	return v.ModelName == UnknownModelName && v.ModelYear == 0
}

// NormalizeChassis trims and upper-cases a chassis code.
func NormalizeChassis(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// PriceObservation ledgerdagi bitta narx yozuvi. Yaratilgandan keyin o'zgarmaydi.
type PriceObservation struct {
	ID            string    `json:"id"`
	ChassisCode   string    `json:"chassis_code"`
	ModelName     string    `json:"model_name"`
	Color         string    `json:"color"`
	ModelYear     int       `json:"model_year"`
	Price         int64     `json:"price"`
	ObservedDate  time.Time `json:"observed_date"`
	Location      string    `json:"location"`
	SubmitterName string    `json:"submitter_name"`
}

// DateString returns the observation day as YYYY-MM-DD.
func (o PriceObservation) DateString() string {
	return o.ObservedDate.Format(DateLayout)
}

const DateLayout = "2006-01-02"

// SubmitterState per-submitter interaction state
type SubmitterState int

const (
	StateIdle SubmitterState = iota
	StateAwaitingPrice
)

func (s SubmitterState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateAwaitingPrice:
		return "awaiting_price"
	default:
		return "unknown"
	}
}

// StateEvent submitter holatini o'zgartiradigan hodisa
type StateEvent int

const (
	// EventIdentified mashina aniqlandi, narx kutilmoqda
	EventIdentified StateEvent = iota
	// EventPriceConfirmed pending narx qabul qilindi
	EventPriceConfirmed
	// EventExpired pending yozuv muddati o'tdi
	EventExpired
)

// stateTransitions Idle/AwaitingPrice o'tish jadvali; jadvalda yo'q juftlik ruxsat etilmaydi
var stateTransitions = map[SubmitterState]map[StateEvent]SubmitterState{
	StateIdle: {
		EventIdentified: StateAwaitingPrice,
	},
	StateAwaitingPrice: {
		EventIdentified:     StateAwaitingPrice,
		EventPriceConfirmed: StateIdle,
		EventExpired:        StateIdle,
	},
}

// Next returns the state reached from s on ev, or false if ev is not allowed in s.
func (s SubmitterState) Next(ev StateEvent) (SubmitterState, bool) {
	next, ok := stateTransitions[s][ev]
	return next, ok
}

// PendingEntry narx kutilayotgan mashina (foydalanuvchi bo'yicha bittadan ko'p emas)
type PendingEntry struct {
	SubmitterID int64
	Vehicle     Vehicle
	PhotoRef    string
	CreatedAt   time.Time
}
