package thumbnail

import (
	"image"

	"gocv.io/x/gocv"
)

// Stability constants for the SSIM formula, standard for 8-bit images:
// C1=(0.01*255)^2, C2=(0.03*255)^2.
const (
	ssimC1 = 6.5025
	ssimC2 = 58.5225
)

func blur(src gocv.Mat) gocv.Mat {
	dst := gocv.NewMat()
	gocv.GaussianBlur(src, &dst, image.Pt(11, 11), 1.5, 1.5, gocv.BorderDefault)
	return dst
}

func mul(a, b gocv.Mat) gocv.Mat {
	dst := gocv.NewMat()
	gocv.Multiply(a, b, &dst)
	return dst
}

func sub(a, b gocv.Mat) gocv.Mat {
	dst := gocv.NewMat()
	gocv.Subtract(a, b, &dst)
	return dst
}

func add(a, b gocv.Mat) gocv.Mat {
	dst := gocv.NewMat()
	gocv.Add(a, b, &dst)
	return dst
}

// SSIM computes the structural similarity index between two grayscale images
// of identical dimensions, in [0, 1] for typical video content (1.0 is a
// perfect match). This is the windowed Gaussian formulation OpenCV documents
// for frame comparison.
func SSIM(x, y gocv.Mat) float64 {
	i1 := gocv.NewMat()
	defer i1.Close()
	x.ConvertTo(&i1, gocv.MatTypeCV32F)
	i2 := gocv.NewMat()
	defer i2.Close()
	y.ConvertTo(&i2, gocv.MatTypeCV32F)

	i1sq := mul(i1, i1)
	defer i1sq.Close()
	i2sq := mul(i2, i2)
	defer i2sq.Close()
	i1i2 := mul(i1, i2)
	defer i1i2.Close()

	mu1 := blur(i1)
	defer mu1.Close()
	mu2 := blur(i2)
	defer mu2.Close()

	mu1sq := mul(mu1, mu1)
	defer mu1sq.Close()
	mu2sq := mul(mu2, mu2)
	defer mu2sq.Close()
	mu1mu2 := mul(mu1, mu2)
	defer mu1mu2.Close()

	blurI1sq := blur(i1sq)
	defer blurI1sq.Close()
	sigma1sq := sub(blurI1sq, mu1sq)
	defer sigma1sq.Close()

	blurI2sq := blur(i2sq)
	defer blurI2sq.Close()
	sigma2sq := sub(blurI2sq, mu2sq)
	defer sigma2sq.Close()

	blurI1i2 := blur(i1i2)
	defer blurI1i2.Close()
	sigma12 := sub(blurI1i2, mu1mu2)
	defer sigma12.Close()

	// numerator = (2*mu1mu2 + C1) * (2*sigma12 + C2)
	t1 := add(mu1mu2, mu1mu2)
	defer t1.Close()
	t1.AddFloat(ssimC1)
	t2 := add(sigma12, sigma12)
	defer t2.Close()
	t2.AddFloat(ssimC2)
	numerator := mul(t1, t2)
	defer numerator.Close()

	// denominator = (mu1sq + mu2sq + C1) * (sigma1sq + sigma2sq + C2)
	t3 := add(mu1sq, mu2sq)
	defer t3.Close()
	t3.AddFloat(ssimC1)
	t4 := add(sigma1sq, sigma2sq)
	defer t4.Close()
	t4.AddFloat(ssimC2)
	denominator := mul(t3, t4)
	defer denominator.Close()

	ssimMap := gocv.NewMat()
	defer ssimMap.Close()
	gocv.Divide(numerator, denominator, &ssimMap)

	return ssimMap.Mean().Val1
}
