package sgraph

import "fmt"

// LifelineKind distinguishes real lifelines from the synthetic entries that
// may appear in a lifeline order.
type LifelineKind int

const (
	// LifelineRegular is a participant drawn as a lifeline.
	LifelineRegular LifelineKind = iota
	// LifelineDummy is a zero-geometry endpoint standing in for the missing
	// side of a lost or found message.
	LifelineDummy
	// LifelineInteraction marks the surrounding interaction. The coordinate
	// pass stops when it reaches this entry.
	LifelineInteraction
)

var lifelineKindNames = [...]string{
	LifelineRegular:     "lifeline",
	LifelineDummy:       "dummy",
	LifelineInteraction: "interaction",
}

func (k LifelineKind) String() string {
	if k < 0 || int(k) >= len(lifelineKindNames) {
		return fmt.Sprintf("LifelineKind(%d)", int(k))
	}
	return lifelineKindNames[k]
}

// ParseLifelineKind returns the kind named s. The empty string is a regular
// lifeline.
func ParseLifelineKind(s string) (LifelineKind, error) {
	if s == "" {
		return LifelineRegular, nil
	}
	for k, name := range lifelineKindNames {
		if name == s {
			return LifelineKind(k), nil
		}
	}
	return 0, fmt.Errorf("%w: lifeline kind %q", ErrUnknownKind, s)
}

// MessageKind is the UML message sort.
type MessageKind int

const (
	MessageSync MessageKind = iota
	MessageAsync
	MessageReply
	MessageCreate
	MessageDelete
	MessageLost
	MessageFound
)

var messageKindNames = [...]string{
	MessageSync:   "synchronous",
	MessageAsync:  "asynchronous",
	MessageReply:  "reply",
	MessageCreate: "create",
	MessageDelete: "delete",
	MessageLost:   "lost",
	MessageFound:  "found",
}

func (k MessageKind) String() string {
	if k < 0 || int(k) >= len(messageKindNames) {
		return fmt.Sprintf("MessageKind(%d)", int(k))
	}
	return messageKindNames[k]
}

// ParseMessageKind returns the kind named s. The empty string is a
// synchronous message.
func ParseMessageKind(s string) (MessageKind, error) {
	if s == "" {
		return MessageSync, nil
	}
	for k, name := range messageKindNames {
		if name == s {
			return MessageKind(k), nil
		}
	}
	return 0, fmt.Errorf("%w: message kind %q", ErrUnknownKind, s)
}

// ExecutionKind distinguishes execution boxes from the thin duration and
// time-constraint markers that share the same span bookkeeping.
type ExecutionKind int

const (
	ExecutionBox ExecutionKind = iota
	ExecutionDuration
	ExecutionTimeConstraint
)

var executionKindNames = [...]string{
	ExecutionBox:            "execution",
	ExecutionDuration:       "duration",
	ExecutionTimeConstraint: "time_constraint",
}

func (k ExecutionKind) String() string {
	if k < 0 || int(k) >= len(executionKindNames) {
		return fmt.Sprintf("ExecutionKind(%d)", int(k))
	}
	return executionKindNames[k]
}

// ParseExecutionKind returns the kind named s. The empty string is an
// execution box.
func ParseExecutionKind(s string) (ExecutionKind, error) {
	if s == "" {
		return ExecutionBox, nil
	}
	for k, name := range executionKindNames {
		if name == s {
			return ExecutionKind(k), nil
		}
	}
	return 0, fmt.Errorf("%w: execution kind %q", ErrUnknownKind, s)
}
