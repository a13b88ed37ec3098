//go:build js && wasm
// +build js,wasm

package main

import (
	"fmt"
	"syscall/js"

	"github.com/MeKo-Tech/beercolor/beercolor"
)

// ratingArgs reads (rating, pathCm?) from JS arguments. The path defaults
// to beercolor.DefaultPath.
func ratingArgs(args []js.Value) (float64, float64, error) {
	if len(args) < 1 || args[0].Type() != js.TypeNumber {
		return 0, 0, fmt.Errorf("missing rating")
	}
	path := beercolor.DefaultPath
	if len(args) > 1 && args[1].Type() == js.TypeNumber {
		path = args[1].Float()
	}
	return args[0].Float(), path, nil
}

func toHex(scale beercolor.Scale) js.Func {
	return js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		value, path, err := ratingArgs(args)
		if err != nil {
			return map[string]interface{}{"error": err.Error()}
		}
		return scale.ToSRGB(value, path).Hex()
	})
}

// srmToRGB returns {r, g, b, hex} with channels in [0,1].
func srmToRGB(this js.Value, args []js.Value) interface{} {
	value, path, err := ratingArgs(args)
	if err != nil {
		return map[string]interface{}{"error": err.Error()}
	}
	rgb := beercolor.SRMToSRGB(value, path)
	return map[string]interface{}{
		"r":   rgb.R,
		"g":   rgb.G,
		"b":   rgb.B,
		"hex": rgb.Hex(),
	}
}

func main() {
	c := make(chan struct{})

	js.Global().Set("beercolorSRMToHex", toHex(beercolor.SRM))
	js.Global().Set("beercolorEBCToHex", toHex(beercolor.EBC))
	js.Global().Set("beercolorSRMToRGB", js.FuncOf(srmToRGB))

	fmt.Println("beercolor WASM module loaded")
	<-c
}
