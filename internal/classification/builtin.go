package classification

import "wastevision/internal/model"

// builtin covers the 80 COCO labels emitted by the default detector.
var builtin = map[string]model.WasteCategory{
	// people and animals
	"person":   model.NotWaste,
	"bird":     model.NotWaste,
	"cat":      model.NotWaste,
	"dog":      model.NotWaste,
	"horse":    model.NotWaste,
	"sheep":    model.NotWaste,
	"cow":      model.NotWaste,
	"elephant": model.NotWaste,
	"bear":     model.NotWaste,
	"zebra":    model.NotWaste,
	"giraffe":  model.NotWaste,

	// vehicles carry fluids and batteries
	"bicycle":    model.Hazardous,
	"car":        model.Hazardous,
	"motorcycle": model.Hazardous,
	"airplane":   model.Hazardous,
	"bus":        model.Hazardous,
	"train":      model.Hazardous,
	"truck":      model.Hazardous,
	"boat":       model.Hazardous,

	// street items
	"traffic light": model.Hazardous,
	"fire hydrant":  model.Recyclable,
	"stop sign":     model.Recyclable,
	"parking meter": model.Hazardous,
	"bench":         model.Recyclable,

	// personal items
	"backpack":       model.Recyclable,
	"umbrella":       model.Recyclable,
	"handbag":        model.Recyclable,
	"tie":            model.Recyclable,
	"suitcase":       model.Recyclable,
	"frisbee":        model.Recyclable,
	"skis":           model.Recyclable,
	"snowboard":      model.Recyclable,
	"sports ball":    model.Recyclable,
	"kite":           model.Recyclable,
	"baseball bat":   model.Recyclable,
	"baseball glove": model.Recyclable,
	"skateboard":     model.Recyclable,
	"surfboard":      model.Recyclable,
	"tennis racket":  model.Recyclable,

	// containers
	"bottle":     model.Recyclable,
	"wine glass": model.Recyclable,
	"cup":        model.Recyclable,
	"bowl":       model.Recyclable,
	"vase":       model.Recyclable,

	// utensils
	"fork":  model.Recyclable,
	"knife": model.Recyclable,
	"spoon": model.Recyclable,

	// food
	"banana":   model.Biodegradable,
	"apple":    model.Biodegradable,
	"sandwich": model.Biodegradable,
	"orange":   model.Biodegradable,
	"broccoli": model.Biodegradable,
	"carrot":   model.Biodegradable,
	"hot dog":  model.Biodegradable,
	"pizza":    model.Biodegradable,
	"donut":    model.Biodegradable,
	"cake":     model.Biodegradable,

	// furniture
	"chair":        model.Recyclable,
	"couch":        model.Recyclable,
	"potted plant": model.Biodegradable,
	"bed":          model.Recyclable,
	"dining table": model.Recyclable,
	"toilet":       model.Recyclable,

	// electronics
	"tv":           model.Hazardous,
	"laptop":       model.Hazardous,
	"mouse":        model.Hazardous,
	"remote":       model.Hazardous,
	"keyboard":     model.Hazardous,
	"cell phone":   model.Hazardous,
	"microwave":    model.Hazardous,
	"oven":         model.Hazardous,
	"toaster":      model.Hazardous,
	"refrigerator": model.Hazardous,

	// other
	"book":       model.Recyclable,
	"clock":      model.Hazardous,
	"scissors":   model.Recyclable,
	"teddy bear": model.Recyclable,
	"hair drier": model.Hazardous,
	"toothbrush": model.Recyclable,
	"sink":       model.Recyclable,
}

// Builtin returns the table compiled into the binary.
func Builtin() *Table {
	return NewTable(builtin)
}

// BuiltinEntries returns a copy of the compiled-in mapping, e.g. for seeding storage.
func BuiltinEntries() map[string]model.WasteCategory {
	return Builtin().Entries()
}
