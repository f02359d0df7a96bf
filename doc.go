// Package tamarack is a retained-mode 3D scene graph with a pointer-pick
// interaction engine: pointer coordinates in, selected entities and
// highlight state out.
//
// Tamarack turns a 2D pointer position into a world-space ray, casts it
// against the scene, resolves the struck surface to its nearest selectable
// ancestor, and manages a single-selection highlight whose appearance is
// always restored on deselect. Rendering is not its business: the built-in
// viewer draws wireframes for inspection, and real renderers read node
// transforms and materials directly.
//
// # Quick start
//
// The simplest way to see a scene is [Run], which opens the built-in
// wireframe viewer with orbit controls and click-to-pick:
//
//	scene := tamarack.NewScene()
//	// ... add nodes ...
//	tamarack.Run(scene, tamarack.RunConfig{
//		Title: "My Scene", Width: 960, Height: 640,
//	})
//
// For full control, drive the scene yourself: call [Scene.Update] each
// frame and [Scene.Pick] from your own input handling.
//
// # Scene graph
//
// Every element is a [Node]. Nodes form a tree rooted at [Scene.Root].
// Children inherit their parent's transform. Create nodes with [NewGroup]
// and [NewSolid]:
//
//	rack := tamarack.NewGroup("rack-A1")
//	rack.Selectable = true
//	scene.Root().AddChild(rack)
//
//	bin := tamarack.NewSolid("bin", tamarack.NewBoxMesh(1, 1, 1),
//		tamarack.Material{Color: tamarack.Color{R: 0.8, G: 0.2, B: 0.2, A: 1}})
//	rack.AddChild(bin)
//
// # Picking
//
// [Scene.Pick] runs the whole pipeline and fires selection listeners
// registered with [Picker.OnSelectionChanged]:
//
//	scene.Picker().OnSelectionChanged(func(ev tamarack.SelectionEvent) {
//		if ev.Node != nil {
//			fmt.Println("selected", ev.Name)
//		}
//	})
//	scene.Pick(mouseX, mouseY)
//
// The pieces are also usable separately: [ResolvePointer] for coordinate
// normalization, [CastRay] for hit testing against any subtree, and
// [Picker] for selection state over hits produced elsewhere.
//
// Camera fly-to animation and the highlight pulse use [gween] tweens.
//
// [gween]: https://github.com/tanema/gween
package tamarack
