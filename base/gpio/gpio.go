package gpio

// Pin identifies a physical digital output line.
type Pin uint32

// Level is the logic level of a digital output.
type Level bool

const (
	Low  Level = false
	High Level = true
)

// Output is a write-only digital output sink. Writes never fail and
// there is no read-back contract.
type Output interface {
	SetPin(pin Pin, level Level)
}
