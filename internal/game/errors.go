package game

// Failure codes reported to callers. All are recoverable; none tear a room
// down.
const (
	CodeInvalidRoom        = "InvalidRoom"
	CodeInvalidParticipant = "InvalidParticipant"
	CodeInvalidTarget      = "InvalidTarget"
	CodeRoomFull           = "RoomFull"
	CodeNotHost            = "NotHost"
	CodePhaseViolation     = "PhaseViolation"
)

// Failure is a structured rejection returned synchronously to the caller.
type Failure struct {
	Code   string
	Reason string
}

func (f *Failure) Error() string {
	return f.Code + ": " + f.Reason
}

// InvalidRoom reports an unknown room code.
func InvalidRoom(code string) *Failure {
	return &Failure{Code: CodeInvalidRoom, Reason: "unknown room " + code}
}

// InvalidParticipant reports an unknown or role-mismatched actor.
func InvalidParticipant(reason string) *Failure {
	return &Failure{Code: CodeInvalidParticipant, Reason: reason}
}

// InvalidTarget reports a forbidden, duplicate or already-resolved target.
func InvalidTarget(reason string) *Failure {
	return &Failure{Code: CodeInvalidTarget, Reason: reason}
}

// RoomFull reports that every seat is already claimed by a live participant.
func RoomFull() *Failure {
	return &Failure{Code: CodeRoomFull, Reason: "room is full"}
}

// NotHost reports a host-only action attempted by a non-host.
func NotHost() *Failure {
	return &Failure{Code: CodeNotHost, Reason: "only the host can do that"}
}

// PhaseViolation reports an action submitted outside its legal sub-phase or
// after its role already completed.
func PhaseViolation(reason string) *Failure {
	return &Failure{Code: CodePhaseViolation, Reason: reason}
}
