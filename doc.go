/*
Package bicubic resizes 8-bit RGB and RGBA rasters with separable bicubic
(Catmull-Rom) interpolation spread over a fixed number of worker goroutines.

	img := bicubic.New(bicubic.WithWorkers(6))
	if err := img.Load("in.png"); err != nil {
		return err
	}
	if err := img.Resize(2048, 1024); err != nil {
		return err
	}
	return img.Save("out.png")

Workers pull destination pixels one at a time from a shared cursor, so the
output is byte-identical for any worker count.
*/
package bicubic
