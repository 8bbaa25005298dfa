// Package viz draws mechanisms in the terminal and lets the user drag them.
//
// Rendering goes through [Canvas], a braille pixel grid, and a [Viewport]
// that maps world coordinates onto it. [Model] is the Bubble Tea drag view
// and [App] a scene menu in front of it.
//
// # Key Bindings
//
//	Arrows/HJKL - Move the target and drag the grab toward it
//	Tab         - Cycle grab points
//	A           - Toggle animated drags
//	M           - Toggle rigid moves without relaxation
//	G           - Toggle ground on the grab
//	[ ]         - Undo and redo
//	R           - Reset
//	V           - Toggle GIF recording
//	?           - Show help overlay
package viz
