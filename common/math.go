package common

import (
	"unsafe"

	"github.com/go-gl/mathgl/mgl32"
)

// Matrix4x4 is a 4x4 affine/projective matrix stored in column-major order,
// the layout expected by the device's matrix uniform uploads.
// The zero value is NOT the identity; use Identity4 or NewMatrix4x4.
type Matrix4x4 struct {
	m mgl32.Mat4
}

// Identity4 returns the 4x4 identity matrix.
//
// Returns:
//   - Matrix4x4: the identity matrix
func Identity4() Matrix4x4 {
	return Matrix4x4{m: mgl32.Ident4()}
}

// NewMatrix4x4 wraps a column-major mgl32.Mat4.
//
// Parameters:
//   - m: the column-major source matrix
//
// Returns:
//   - Matrix4x4: the wrapped matrix
func NewMatrix4x4(m mgl32.Mat4) Matrix4x4 {
	return Matrix4x4{m: m}
}

// Mat4 returns the underlying column-major mgl32.Mat4.
func (a Matrix4x4) Mat4() mgl32.Mat4 {
	return a.m
}

// Floats returns the 16 column-major elements, suitable for a matrix uniform upload.
func (a Matrix4x4) Floats() [16]float32 {
	return [16]float32(a.m)
}

// At returns the element at the given row and column.
func (a Matrix4x4) At(row, col int) float32 {
	return a.m.At(row, col)
}

// Mul returns a·b. Applying the result to a point applies b first, then a.
//
// Parameters:
//   - b: the right-hand matrix
//
// Returns:
//   - Matrix4x4: the product a·b
func (a Matrix4x4) Mul(b Matrix4x4) Matrix4x4 {
	return Matrix4x4{m: a.m.Mul4(b.m)}
}

// SetIdentity resets the matrix to the identity.
func (a *Matrix4x4) SetIdentity() {
	a.m = mgl32.Ident4()
}

// Translate post-multiplies the matrix by a translation.
//
// Parameters:
//   - x, y, z: translation components
func (a *Matrix4x4) Translate(x, y, z float32) {
	a.m = a.m.Mul4(mgl32.Translate3D(x, y, z))
}

// Scale post-multiplies the matrix by a (possibly non-uniform) scale.
//
// Parameters:
//   - x, y, z: scale factors along each axis
func (a *Matrix4x4) Scale(x, y, z float32) {
	a.m = a.m.Mul4(mgl32.Scale3D(x, y, z))
}

// RotateX post-multiplies the matrix by a rotation about the x axis.
//
// Parameters:
//   - deg: rotation angle in degrees
func (a *Matrix4x4) RotateX(deg float32) {
	a.m = a.m.Mul4(mgl32.HomogRotate3DX(mgl32.DegToRad(deg)))
}

// RotateY post-multiplies the matrix by a rotation about the y axis.
//
// Parameters:
//   - deg: rotation angle in degrees
func (a *Matrix4x4) RotateY(deg float32) {
	a.m = a.m.Mul4(mgl32.HomogRotate3DY(mgl32.DegToRad(deg)))
}

// RotateZ post-multiplies the matrix by a rotation about the z axis.
//
// Parameters:
//   - deg: rotation angle in degrees
func (a *Matrix4x4) RotateZ(deg float32) {
	a.m = a.m.Mul4(mgl32.HomogRotate3DZ(mgl32.DegToRad(deg)))
}

// Rotate post-multiplies the matrix by a rotation about an arbitrary axis.
// The axis is normalized; a zero-length axis leaves the matrix unchanged.
//
// Parameters:
//   - deg: rotation angle in degrees
//   - axis: rotation axis
func (a *Matrix4x4) Rotate(deg float32, axis Vector3) {
	v := mgl32.Vec3{axis.X, axis.Y, axis.Z}
	if v.Len() == 0 {
		return
	}
	a.m = a.m.Mul4(mgl32.HomogRotate3D(mgl32.DegToRad(deg), v.Normalize()))
}

// TransformPoint applies the matrix to a point (w = 1) and returns the result
// after the homogeneous divide.
func (a Matrix4x4) TransformPoint(p Point3) Point3 {
	v := mgl32.TransformCoordinate(mgl32.Vec3{p.X, p.Y, p.Z}, a.m)
	return Point3{X: v[0], Y: v[1], Z: v[2]}
}

// TransformVector applies the upper 3x3 block of the matrix to a direction (w = 0).
func (a Matrix4x4) TransformVector(v Vector3) Vector3 {
	r := mgl32.TransformNormal(mgl32.Vec3{v.X, v.Y, v.Z}, a.m)
	return Vector3{X: r[0], Y: r[1], Z: r[2]}
}

// Inverse returns the inverse of the matrix and whether it was invertible.
// A singular matrix yields the zero matrix and false.
func (a Matrix4x4) Inverse() (Matrix4x4, bool) {
	if a.m.Det() == 0 {
		return Matrix4x4{}, false
	}
	return Matrix4x4{m: a.m.Inv()}, true
}

// NormalMatrix derives the matrix used to transform surface normals: the
// inverse-transpose of the upper 3x3 block, embedded in a 4x4 with an identity
// last row and column. When the block is singular the block itself is returned
// and ok is false.
//
// Returns:
//   - Matrix4x4: the normal matrix
//   - bool: false if the upper 3x3 block was singular
func (a Matrix4x4) NormalMatrix() (Matrix4x4, bool) {
	block := a.m.Mat3()
	if block.Det() == 0 {
		return Matrix4x4{m: block.Mat4()}, false
	}
	return Matrix4x4{m: block.Inv().Transpose().Mat4()}, true
}

// ApproxEqual reports whether every element of a and b differs by at most eps.
func (a Matrix4x4) ApproxEqual(b Matrix4x4, eps float32) bool {
	return a.m.ApproxEqualThreshold(b.m, eps)
}

// Ortho2D builds an orthographic projection for a 2D world window.
//
// Parameters:
//   - left, right, bottom, top: world window extents
//
// Returns:
//   - Matrix4x4: the projection matrix
func Ortho2D(left, right, bottom, top float32) Matrix4x4 {
	return Matrix4x4{m: mgl32.Ortho2D(left, right, bottom, top)}
}

// Perspective builds a perspective projection matrix for OpenGL clip space.
//
// Parameters:
//   - fovY: vertical field of view in degrees
//   - aspect: viewport aspect ratio (width/height)
//   - near, far: clipping plane distances
//
// Returns:
//   - Matrix4x4: the projection matrix
func Perspective(fovY, aspect, near, far float32) Matrix4x4 {
	return Matrix4x4{m: mgl32.Perspective(mgl32.DegToRad(fovY), aspect, near, far)}
}

// LookAt builds a view matrix for a camera at eye looking at center.
//
// Parameters:
//   - eye: camera position
//   - center: look-at point
//   - up: up direction
//
// Returns:
//   - Matrix4x4: the view matrix
func LookAt(eye, center Point3, up Vector3) Matrix4x4 {
	return Matrix4x4{m: mgl32.LookAtV(
		mgl32.Vec3{eye.X, eye.Y, eye.Z},
		mgl32.Vec3{center.X, center.Y, center.Z},
		mgl32.Vec3{up.X, up.Y, up.Z},
	)}
}

// SliceToBytes converts any slice to a byte slice for GPU buffer uploads.
// Uses unsafe pointer operations to create a view into the original data.
// WARNING: The returned slice shares memory with the input - do not modify.
//
// Parameters:
//   - data: source slice of any type
//
// Returns:
//   - []byte: byte slice view of the input data, or nil if input is empty
func SliceToBytes[T any](data []T) []byte {
	if len(data) == 0 {
		return nil
	}
	var zero T
	size := unsafe.Sizeof(zero)
	totalBytes := int(size) * len(data)
	return unsafe.Slice((*byte)(unsafe.Pointer(&data[0])), totalBytes)
}

// StructToBytes reinterprets a pointer to a struct as a raw byte slice using unsafe.
// The returned slice has length equal to the struct's size in memory.
//
// Parameters:
//   - v: pointer to the struct to reinterpret
//
// Returns:
//   - []byte: byte slice view of the struct's memory
func StructToBytes[T any](v *T) []byte {
	size := unsafe.Sizeof(*v)
	return unsafe.Slice((*byte)(unsafe.Pointer(v)), int(size))
}
