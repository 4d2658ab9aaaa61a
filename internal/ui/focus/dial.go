package focus

import "fyne.io/fyne/v2"

// dialLayout centers its objects in a square whose side follows scale.
// The first object (the ring) fills the square; the rest are centered at
// their min size.
type dialLayout struct {
	scale float32
}

const dialFill = float32(0.8)

func (layout *dialLayout) Layout(objects []fyne.CanvasObject, size fyne.Size) {
	if len(objects) == 0 {
		return
	}
	scale := layout.scale
	if scale <= 0 {
		scale = 1
	}

	side := size.Width
	if size.Height < side {
		side = size.Height
	}
	side = side * dialFill * scale
	if side > size.Width {
		side = size.Width
	}
	if side > size.Height {
		side = size.Height
	}

	ring := objects[0]
	ring.Resize(fyne.NewSize(side, side))
	ring.Move(fyne.NewPos((size.Width-side)/2, (size.Height-side)/2))

	for _, object := range objects[1:] {
		minSize := object.MinSize()
		object.Resize(minSize)
		object.Move(fyne.NewPos((size.Width-minSize.Width)/2, (size.Height-minSize.Height)/2))
	}
}

func (layout *dialLayout) MinSize(objects []fyne.CanvasObject) fyne.Size {
	if len(objects) == 0 {
		return fyne.NewSize(0, 0)
	}
	var width, height float32
	for _, object := range objects[1:] {
		minSize := object.MinSize()
		if minSize.Width > width {
			width = minSize.Width
		}
		if minSize.Height > height {
			height = minSize.Height
		}
	}
	side := width
	if height > side {
		side = height
	}
	side = side * 1.6
	return fyne.NewSize(side, side)
}
