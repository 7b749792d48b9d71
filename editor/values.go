package editor

// Model-backed values the GUI widgets bind to.

func (m *Model) BPM() Float        { return MakeFloat((*bpmValue)(m)) }
func (m *Model) SongLength() Float { return MakeFloat((*songLengthValue)(m)) }
func (m *Model) Grid() Float       { return MakeFloat((*gridValue)(m)) }
func (m *Model) Playing() Bool     { return MakeBool((*playingValue)(m)) }
func (m *Model) Loop() Bool        { return MakeBool((*loopValue)(m)) }
func (m *Model) TrackName() String { return MakeString((*trackNameValue)(m)) }
func (m *Model) BlockName() String { return MakeString((*blockNameValue)(m)) }

type bpmValue Model

func (v *bpmValue) Value() float64 { return v.d.Song.BPM }
func (v *bpmValue) Range() RangeF  { return RangeF{20, 400} }
func (v *bpmValue) SetValue(value float64) bool {
	m := (*Model)(v)
	defer m.change("BPM", MinorChange)()
	m.d.Song.BPM = value
	return true
}

type songLengthValue Model

func (v *songLengthValue) Value() float64 { return v.d.Song.Length }
func (v *songLengthValue) Range() RangeF  { return RangeF{1, 1e6} }
func (v *songLengthValue) SetValue(value float64) bool {
	m := (*Model)(v)
	defer m.change("SongLength", MinorChange)()
	m.d.Song.Length = value
	return true
}

type gridValue Model

func (v *gridValue) Value() float64 { return v.d.Grid }
func (v *gridValue) Range() RangeF  { return RangeF{1.0 / 16, 4} }
func (v *gridValue) SetValue(value float64) bool {
	(*Model)(v).SetGridBeats(value)
	return true
}

type playingValue Model

func (v *playingValue) Value() bool { return (*Model)(v).playing }
func (v *playingValue) SetValue(value bool) {
	m := (*Model)(v)
	if m.playing == value {
		return
	}
	m.playing = value
	TrySend(m.broker.ToPlayer, MsgToPlayer{HasPlaying: true, Playing: value})
}

type loopValue Model

func (v *loopValue) Value() bool { return v.d.Loop }
func (v *loopValue) SetValue(value bool) {
	m := (*Model)(v)
	m.d.Loop = value
	TrySend(m.broker.ToPlayer, MsgToPlayer{HasLoop: true, Loop: value})
}

type trackNameValue Model

func (v *trackNameValue) Value() string {
	m := (*Model)(v)
	if m.d.ActiveTrack < 0 || m.d.ActiveTrack >= len(m.d.Song.Tracks) {
		return ""
	}
	return m.d.Song.Tracks[m.d.ActiveTrack].Name
}

func (v *trackNameValue) SetValue(value string) bool {
	m := (*Model)(v)
	if m.d.ActiveTrack < 0 || m.d.ActiveTrack >= len(m.d.Song.Tracks) {
		return false
	}
	defer m.change("TrackName", MinorChange)()
	m.d.Song.Tracks[m.d.ActiveTrack].Name = value
	return true
}

type blockNameValue Model

func (v *blockNameValue) Value() string {
	if b, ok := (*Model)(v).ActiveBlock(); ok {
		return b.Name
	}
	return ""
}

func (v *blockNameValue) SetValue(value string) bool {
	m := (*Model)(v)
	b, ok := m.ActiveBlock()
	if !ok {
		return false
	}
	defer m.change("BlockName", MinorChange)()
	b.Name = value
	return true
}
