//go:build js && wasm

package main

import (
	"syscall/js"

	"github.com/zbanalyzer/zbparse/api"
	"github.com/zbanalyzer/zbparse/zorton"
)

func bytesFromJS(v js.Value) []byte {
	buf := make([]byte, v.Get("length").Int())
	js.CopyBytesToGo(buf, v)
	return buf
}

func bytesToJS(b []byte) js.Value {
	arr := js.Global().Get("Uint8Array").New(len(b))
	js.CopyBytesToJS(arr, b)
	return arr
}

// parseDump(bytes, name?) returns the JSON report as a string.
func parseDump(this js.Value, args []js.Value) any {
	if len(args) < 1 {
		return js.ValueOf("missing dump bytes")
	}
	name := "dump.bin"
	if len(args) > 1 && args[1].Type() == js.TypeString {
		name = args[1].String()
	}
	out, err := api.ParseDumpToJSON(name, bytesFromJS(args[0]), zorton.DefaultOptions())
	if err != nil {
		return js.ValueOf(err.Error())
	}
	return js.ValueOf(string(out))
}

func packReport(this js.Value, args []js.Value) any {
	if len(args) < 1 {
		return js.ValueOf("missing report bytes")
	}
	out, err := api.RepackReport(bytesFromJS(args[0]), zorton.PackCompZstd)
	if err != nil {
		return js.ValueOf(err.Error())
	}
	return bytesToJS(out)
}

func analyzeReport(this js.Value, args []js.Value) any {
	if len(args) < 1 {
		return js.ValueOf("missing report bytes")
	}
	analyses, err := api.AnalyzeReport(bytesFromJS(args[0]), nil, 0)
	if err != nil {
		return js.ValueOf(err.Error())
	}
	out, err := api.MarshalAnalyses(analyses)
	if err != nil {
		return js.ValueOf(err.Error())
	}
	return js.ValueOf(string(out))
}

func hitbox2glb(this js.Value, args []js.Value) any {
	if len(args) < 1 {
		return js.ValueOf("missing report bytes")
	}
	out, err := api.ReportToGLB(bytesFromJS(args[0]))
	if err != nil {
		return js.ValueOf(err.Error())
	}
	return bytesToJS(out)
}

func main() {
	js.Global().Set("parseDump", js.FuncOf(parseDump))
	js.Global().Set("packReport", js.FuncOf(packReport))
	js.Global().Set("analyzeReport", js.FuncOf(analyzeReport))
	js.Global().Set("hitbox2glb", js.FuncOf(hitbox2glb))
	select {}
}
