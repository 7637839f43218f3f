package pitch

// Reading is the full pitch estimate for one frame.
type Reading struct {
	Frequency float64
	Note      Note
	// AbsoluteCents is the 12-TET deviation against the A4 reference.
	AbsoluteCents float64
	// DisplayCents is the scale-relative deviation when a scale is active,
	// otherwise AbsoluteCents.
	DisplayCents float64

	HasStep bool
	Step    Match
	Label   string
}

// Estimate maps freq to a note and, when anchored is non-empty, to the
// nearest scale step. It fails with ErrInvalidFrequency for frequencies at or
// below 20 Hz or not finite.
func Estimate(freq, a4 float64, root int, anchored []float64) (Reading, error) {
	note, err := Absolute(freq, a4)
	if err != nil {
		return Reading{}, err
	}

	r := Reading{
		Frequency:     freq,
		Note:          note,
		AbsoluteCents: note.Cents,
		DisplayCents:  note.Cents,
	}

	if len(anchored) > 0 {
		m := nearestStep(CentsFromRoot(freq, a4, root), anchored)
		r.HasStep = true
		r.Step = m
		r.DisplayCents = m.Cents
		r.Label = Label(m.Index, m.Step, root)
	}

	return r, nil
}
