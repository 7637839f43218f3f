//go:build js && wasm

package main

import (
	"syscall/js"

	"github.com/cwbudde/algo-tuner/dsp/core"
	"github.com/cwbudde/algo-tuner/internal/capture"
	"github.com/cwbudde/algo-tuner/tuner"
	"github.com/cwbudde/algo-tuner/tuning/pitch"
	"github.com/cwbudde/algo-tuner/tuning/scala"
	"github.com/cwbudde/algo-tuner/tuning/scale"
)

var (
	engine *tuner.Engine
	framer *capture.Framer
	rate   float64
	// samples pushed since the last analysed frame
	pending int
	block   []float32
	funcs   []js.Func
)

func main() {
	api := js.Global().Get("Object").New()
	api.Set("init", export(func(args []js.Value) any {
		sr := float64(core.DefaultSampleRate)
		if len(args) > 0 {
			sr = args[0].Float()
		}
		e, err := tuner.NewEngine(tuner.WithSampleRate(sr))
		if err != nil {
			return err.Error()
		}
		engine = e
		framer = capture.NewFramer(core.DefaultFrameSize)
		rate = sr
		pending = 0
		return js.Null()
	}))

	api.Set("setRunning", export(func(args []js.Value) any {
		if engine == nil || len(args) < 1 {
			return js.Null()
		}
		if args[0].Bool() {
			framer.Reset()
			pending = 0
			engine.Start()
		} else {
			engine.Stop()
		}
		return js.Null()
	}))

	// process takes the Float32Array blocks of an AudioWorklet and analyses
	// one frame per completed hop.
	api.Set("process", export(func(args []js.Value) any {
		if engine == nil || len(args) < 1 {
			return js.Null()
		}
		input := args[0]
		n := input.Length()
		if cap(block) < n {
			block = make([]float32, n)
		}
		block = block[:n]
		for i := 0; i < n; i++ {
			block[i] = float32(input.Index(i).Float())
		}
		window := framer.Push(block)
		pending += n
		if pending >= core.DefaultHopSize {
			pending = 0
			engine.Process(window, rate)
		}
		return js.Null()
	}))

	api.Set("state", export(func(args []js.Value) any {
		if engine == nil {
			return js.Null()
		}
		return stateObject(engine.State())
	}))

	api.Set("setRoot", export(func(args []js.Value) any {
		if engine == nil || len(args) < 1 {
			return js.Null()
		}
		root, err := pitch.ParseRoot(args[0].String())
		if err == nil {
			err = engine.SetRoot(root)
		}
		if err != nil {
			return err.Error()
		}
		return js.Null()
	}))

	api.Set("setA4", export(func(args []js.Value) any {
		if engine == nil || len(args) < 1 {
			return js.Null()
		}
		hz, clamped, err := engine.ParseA4(args[0].String())
		if err != nil {
			return err.Error()
		}
		res := js.Global().Get("Object").New()
		res.Set("hz", hz)
		res.Set("clamped", clamped)
		return res
	}))

	api.Set("cycleA4", export(func(args []js.Value) any {
		if engine == nil {
			return js.Null()
		}
		return engine.CycleA4Preset()
	}))

	api.Set("setSmoothing", export(func(args []js.Value) any {
		if engine == nil || len(args) < 1 {
			return js.Null()
		}
		return engine.SetSmoothingAlpha(args[0].Float())
	}))

	api.Set("setThreshold", export(func(args []js.Value) any {
		if engine == nil || len(args) < 1 {
			return js.Null()
		}
		return engine.SetThresholdDB(args[0].Float())
	}))

	// loadScale accepts the text of a .scl file.
	api.Set("loadScale", export(func(args []js.Value) any {
		if engine == nil || len(args) < 1 {
			return js.Null()
		}
		def, err := scala.ParseString(args[0].String())
		if err == nil {
			err = engine.LoadScale(def)
		}
		if err != nil {
			return err.Error()
		}
		return js.Null()
	}))

	// createScale builds a scale from a description and free step text.
	api.Set("createScale", export(func(args []js.Value) any {
		if engine == nil || len(args) < 2 {
			return js.Null()
		}
		steps, err := scala.ParseSteps(args[1].String())
		if err == nil {
			err = engine.LoadScale(scale.NewDefinition(args[0].String(), steps))
		}
		if err != nil {
			return err.Error()
		}
		return js.Null()
	}))

	api.Set("clearScale", export(func(args []js.Value) any {
		if engine != nil {
			engine.ClearScale()
		}
		return js.Null()
	}))

	api.Set("exportScale", export(func(args []js.Value) any {
		if engine == nil {
			return ""
		}
		snap := engine.Scale()
		if !snap.Active() {
			return ""
		}
		return scala.Format(snap.Definition)
	}))

	js.Global().Set("AlgoTuner", api)
	select {}
}

func stateObject(st tuner.State) js.Value {
	obj := js.Global().Get("Object").New()
	obj.Set("frequency", st.Frequency)
	obj.Set("note", st.NoteName)
	obj.Set("absoluteCents", st.AbsoluteCents)
	obj.Set("displayCents", st.DisplayCents)
	obj.Set("levelDB", st.LevelDB)
	obj.Set("running", st.Running)
	obj.Set("stepLabel", st.StepLabel)
	obj.Set("hasScale", st.HasScale)
	obj.Set("scale", st.ScaleDescription)
	obj.Set("root", st.Root)
	obj.Set("rootName", pitch.NoteName(st.Root))
	obj.Set("a4", st.A4)

	anchored := js.Global().Get("Array").New(len(st.Anchored))
	for i, c := range st.Anchored {
		anchored.SetIndex(i, c)
	}
	obj.Set("anchored", anchored)
	return obj
}

func export(fn func([]js.Value) any) js.Func {
	f := js.FuncOf(func(_ js.Value, args []js.Value) any {
		return fn(args)
	})
	funcs = append(funcs, f)
	return f
}
