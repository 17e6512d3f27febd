package training

// GateState is the unlock state of a lesson's quiz entry.
type GateState string

const (
	GateLocked   GateState = "locked"
	GateUnlocked GateState = "unlocked"
)

// LessonGate governs whether a user may enter a lesson's quiz. It starts
// locked and unlocks on a video-ended signal, a manual unlock, or prior
// watched progress. The gate only controls entry; quiz outcomes live in
// Progress. Manual unlock exists because some third-party video embeds never
// deliver an end-of-playback callback.
type LessonGate struct {
	state GateState
}

func NewLessonGate(watched bool) *LessonGate {
	g := &LessonGate{state: GateLocked}
	if watched {
		g.state = GateUnlocked
	}
	return g
}

func (g *LessonGate) VideoEnded() {
	g.state = GateUnlocked
}

func (g *LessonGate) ManualUnlock() {
	g.state = GateUnlocked
}

func (g *LessonGate) State() GateState {
	return g.state
}

func (g *LessonGate) QuizAllowed() bool {
	return g.state == GateUnlocked
}
