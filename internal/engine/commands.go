package engine

import "github.com/icco/padsynth/internal/scales"

// checkCommands handles the L+R+button settings combos. A matched combo
// consumes the button's press edge so it never doubles as a note trigger;
// the rest of the poll still runs, so release edges landing in a combo
// poll are not lost.
//
//	L+R+A      toggle portamento
//	L+R+Y      cycle scale mode
//	L+R+X      transpose up a semitone
//	L+R+B      transpose down a semitone
//	L+R+Up     switch to chord playstyle
//	L+R+Down   switch to monophonic playstyle
//	L+R+Right  cycle chord voicing profile
func (e *Engine) checkCommands() {
	t := e.tracker
	if !t.Held[BtnL] || !t.Held[BtnR] {
		return
	}

	consumed := noButton
	switch {
	case t.Pressed[BtnA]:
		e.SetPortamento(!e.st.Portamento)
		e.log.Info("portamento", "enabled", e.st.Portamento)
		consumed = BtnA

	case t.Pressed[BtnY]:
		e.scale.Mode = (e.scale.Mode + 1) % scales.NumModes
		e.scale.Rebuild()
		e.log.Info("scale mode", "mode", e.scale.Mode.String())
		consumed = BtnY

	case t.Pressed[BtnX]:
		e.scale.Key = (e.scale.Key + 1) % 12
		e.scale.Rebuild()
		e.log.Info("key offset", "semitones", e.scale.Key)
		consumed = BtnX

	case t.Pressed[BtnB]:
		e.scale.Key = (e.scale.Key + 11) % 12
		e.scale.Rebuild()
		e.log.Info("key offset", "semitones", e.scale.Key)
		consumed = BtnB

	case t.Pressed[BtnUp]:
		e.SetStyle(StyleChord)
		e.log.Info("playstyle", "style", e.st.Style.String())
		consumed = BtnUp

	case t.Pressed[BtnDown]:
		e.SetStyle(StyleMono)
		e.log.Info("playstyle", "style", e.st.Style.String())
		consumed = BtnDown

	case t.Pressed[BtnRight]:
		e.st.ChordProfile = (e.st.ChordProfile + 1) % scales.NumChordProfiles
		e.log.Info("chord profile", "profile", e.st.ChordProfile)
		consumed = BtnRight

	default:
		return
	}
	t.Pressed[consumed] = false
}
