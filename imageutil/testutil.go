package imageutil

// CreateCheckerboardImage creates a black and white checkerboard with
// squares of squareSize pixels, white in the top-left corner.
func CreateCheckerboardImage(width, height, squareSize int) *RGBAImage {
	img := NewRGBAImage(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if ((x/squareSize)+(y/squareSize))%2 == 0 {
				img.SetRGB(x, y, RGB{R: 255, G: 255, B: 255})
			} else {
				img.SetRGB(x, y, RGB{})
			}
		}
	}
	return img
}

// CreateSolidImage creates a solid color image.
func CreateSolidImage(width, height int, c RGB) *RGBAImage {
	img := NewRGBAImage(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetRGB(x, y, c)
		}
	}
	return img
}

// CountGrayDiff returns the number of pixels that differ between two
// grayscale images of the same size, or -1 if the sizes differ.
func CountGrayDiff(img1, img2 *GrayImage) int {
	if img1.Width() != img2.Width() || img1.Height() != img2.Height() {
		return -1
	}
	diff := 0
	for y := 0; y < img1.Height(); y++ {
		for x := 0; x < img1.Width(); x++ {
			if img1.GetGray(x, y) != img2.GetGray(x, y) {
				diff++
			}
		}
	}
	return diff
}
