// Package detection provides the geometric primitives used to find plot
// outlines and straight structural lines in binary images.
//
// # Contours
//
// FindExternalContours groups foreground pixels into 8-connected components,
// keeps the outermost ones (regions nested inside another region's hole are
// ignored) and traces each outer boundary with Moore-neighbour tracing. The
// traced outlines feed three measurements:
//
//   - ArcLength: perimeter of the closed outline
//   - Area: enclosed area by the shoelace formula over pixel centres
//   - ApproxPolygon: closed Douglas–Peucker simplification
//
// # Lines
//
// HoughLines implements the standard (ρ, θ) Hough transform with a
// neighbourhood peak test. Results are full lines in normal form rather than
// segments; use Line.DirectionDegrees to classify their orientation.
//
// # Coordinate System
//
// All coordinates use the standard image convention:
//   - Origin (0, 0) at top-left corner
//   - X increases rightward
//   - Y increases downward
//
// "Clockwise" in this package is clockwise as seen on screen with Y pointing
// down.
//
// # Performance Considerations
//
// Contour extraction is linear in the number of pixels. The Hough transform
// costs O(edgePixels × angles); with 1° resolution that is 180 votes per edge
// pixel, so very large or very noisy edge maps are the dominant cost of a
// cemetery analysis.
package detection
