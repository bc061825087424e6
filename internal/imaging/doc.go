// Package imaging is the file and pixel boundary of the server.
//
// It decodes image files (with a small path-keyed cache), restricts them to an
// optional region, converts them to 8-bit intensities, and wraps the edges
// and tone packages in JSON-friendly result types whose images are returned as
// base64 PNG.
//
// # Coordinate System
//
// Pixel coordinates are 0-based with (0,0) at the top-left corner. For a
// Region, (X1,Y1) is inclusive and (X2,Y2) is exclusive. Cropped images are
// re-anchored at (0,0).
//
// # Intensity Conversion
//
// Color images are converted with ITU-R BT.601 luma weights
// (0.299*R + 0.587*G + 0.114*B). Images that are already 8-bit grayscale are
// used as-is.
//
// # Thread Safety
//
// The ImageCache type is safe for concurrent use. All other functions are
// stateless and never modify their input images.
package imaging
