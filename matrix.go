package sketch5

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
)

// Matrix2D is a 2D affine transform stored as two rows:
//
//	| m[0][0]  m[0][1]  m[0][2] |
//	| m[1][0]  m[1][1]  m[1][2] |
//	|    0        0        1    |
//
// The zero value is not the identity; use IdentityMatrix2D.
type Matrix2D [2][3]float64

// IdentityMatrix2D returns the identity transform.
func IdentityMatrix2D() Matrix2D {
	return Matrix2D{{1, 0, 0}, {0, 1, 0}}
}

// Translation2D returns a matrix translating by (tx, ty).
func Translation2D(tx, ty float64) Matrix2D {
	return Matrix2D{{1, 0, tx}, {0, 1, ty}}
}

// Rotation2D returns a matrix rotating counterclockwise by angle radians.
func Rotation2D(angle float64) Matrix2D {
	sin, cos := math.Sincos(angle)
	return Matrix2D{{cos, -sin, 0}, {sin, cos, 0}}
}

// Scaling2D returns a matrix scaling by (sx, sy).
func Scaling2D(sx, sy float64) Matrix2D {
	return Matrix2D{{sx, 0, 0}, {0, sy, 0}}
}

// Mul returns m * o, which applies o first and then m.
func (m Matrix2D) Mul(o Matrix2D) Matrix2D {
	return Matrix2D{
		{
			m[0][0]*o[0][0] + m[0][1]*o[1][0],
			m[0][0]*o[0][1] + m[0][1]*o[1][1],
			m[0][0]*o[0][2] + m[0][1]*o[1][2] + m[0][2],
		},
		{
			m[1][0]*o[0][0] + m[1][1]*o[1][0],
			m[1][0]*o[0][1] + m[1][1]*o[1][1],
			m[1][0]*o[0][2] + m[1][1]*o[1][2] + m[1][2],
		},
	}
}

// Determinant returns the determinant of the linear part.
func (m Matrix2D) Determinant() float64 {
	return m[0][0]*m[1][1] - m[0][1]*m[1][0]
}

// Invert returns the inverse of m. ok is false when m is singular, in which
// case the identity is returned.
func (m Matrix2D) Invert() (inv Matrix2D, ok bool) {
	det := m.Determinant()
	if det > -1e-12 && det < 1e-12 {
		return IdentityMatrix2D(), false
	}
	invDet := 1 / det
	a := m[1][1] * invDet
	b := -m[1][0] * invDet
	c := -m[0][1] * invDet
	d := m[0][0] * invDet
	return Matrix2D{
		{a, c, -(a*m[0][2] + c*m[1][2])},
		{b, d, -(b*m[0][2] + d*m[1][2])},
	}, true
}

// Apply transforms the point (x, y).
func (m Matrix2D) Apply(x, y float64) (float64, float64) {
	return m[0][0]*x + m[0][1]*y + m[0][2], m[1][0]*x + m[1][1]*y + m[1][2]
}

// Rows returns the matrix as a row slice, the form Vector.MatMul accepts.
func (m Matrix2D) Rows() [][]float64 {
	return [][]float64{m[0][:], m[1][:]}
}

// GeoM converts m to the engine's geometry matrix.
func (m Matrix2D) GeoM() ebiten.GeoM {
	var g ebiten.GeoM
	for i := range 2 {
		for j := range 3 {
			g.SetElement(i, j, m[i][j])
		}
	}
	return g
}

// Matrix2DFromGeoM converts an engine geometry matrix.
func Matrix2DFromGeoM(g ebiten.GeoM) Matrix2D {
	var m Matrix2D
	for i := range 2 {
		for j := range 3 {
			m[i][j] = g.Element(i, j)
		}
	}
	return m
}

func (m Matrix2D) String() string {
	return fmt.Sprintf("Matrix2D[%g %g %g; %g %g %g]", m[0][0], m[0][1], m[0][2], m[1][0], m[1][1], m[1][2])
}

// Matrix3D is a 4x4 homogeneous transform stored row by row.
type Matrix3D [4][4]float64

// IdentityMatrix3D returns the identity transform.
func IdentityMatrix3D() Matrix3D {
	return Matrix3DFromMat4(mgl64.Ident4())
}

// Mat4 converts m to a mathgl matrix. mgl64 stores columns first, so this
// is a transpose of the memory layout, not of the matrix.
func (m Matrix3D) Mat4() mgl64.Mat4 {
	var out mgl64.Mat4
	for i := range 4 {
		for j := range 4 {
			out.Set(i, j, m[i][j])
		}
	}
	return out
}

// Matrix3DFromMat4 converts a mathgl matrix.
func Matrix3DFromMat4(a mgl64.Mat4) Matrix3D {
	var m Matrix3D
	for i := range 4 {
		for j := range 4 {
			m[i][j] = a.At(i, j)
		}
	}
	return m
}

// Mul returns m * o.
func (m Matrix3D) Mul(o Matrix3D) Matrix3D {
	return Matrix3DFromMat4(m.Mat4().Mul4(o.Mat4()))
}

// Invert returns the inverse of m. ok is false when m is singular, in which
// case the identity is returned.
func (m Matrix3D) Invert() (inv Matrix3D, ok bool) {
	a := m.Mat4()
	if math.Abs(a.Det()) < 1e-12 {
		return IdentityMatrix3D(), false
	}
	return Matrix3DFromMat4(a.Inv()), true
}

// Apply transforms the point (x, y, z), dividing by w when w is not 1.
func (m Matrix3D) Apply(x, y, z float64) (float64, float64, float64) {
	r := m.Mat4().Mul4x1(mgl64.Vec4{x, y, z, 1})
	if r[3] != 0 && r[3] != 1 {
		return r[0] / r[3], r[1] / r[3], r[2] / r[3]
	}
	return r[0], r[1], r[2]
}

// Rows returns the matrix as a row slice, the form Vector.MatMul accepts.
func (m Matrix3D) Rows() [][]float64 {
	return [][]float64{m[0][:], m[1][:], m[2][:], m[3][:]}
}

func (m Matrix3D) String() string {
	return fmt.Sprintf("Matrix3D%v", [4][4]float64(m))
}

// MatrixFromRows builds a Matrix2D from 2x3 rows or a Matrix3D from 4x4
// rows. Any other shape is a conversion error.
func MatrixFromRows(rows [][]float64) (any, error) {
	shape := func(r, c int) bool {
		if len(rows) != r {
			return false
		}
		for _, row := range rows {
			if len(row) != c {
				return false
			}
		}
		return true
	}
	switch {
	case shape(2, 3):
		var m Matrix2D
		for i := range 2 {
			copy(m[i][:], rows[i])
		}
		return m, nil
	case shape(4, 4):
		var m Matrix3D
		for i := range 4 {
			copy(m[i][:], rows[i])
		}
		return m, nil
	}
	cols := 0
	if len(rows) > 0 {
		cols = len(rows[0])
	}
	return nil, fmt.Errorf("sketch5: matrix of shape %dx%d is neither 2x3 nor 4x4: %w", len(rows), cols, ErrConversion)
}
