// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package attr

// Value-carrying types for the AttributeType tags that the shared
// linear package (an external collaborator per this module's scope)
// does not define. linear.V3, linear.V4 and linear.M3 are reused
// directly for Vector3, Vector4 and Matrix3x3, since their storage
// shape already matches (12, 16 and 36 bytes respectively).

// Degrees is an angle value stored in degrees.
type Degrees float32

// Radians is an angle value stored in radians.
type Radians float32

// Vec2 is a 2-component vector of float32, for AttributeType Vector2.
type Vec2 [2]float32

// Vec2i is a 2-component vector of int32, for AttributeType Vector2i.
type Vec2i [2]int32

// Vec2ui is a 2-component vector of uint32, for AttributeType Vector2ui.
type Vec2ui [2]uint32

// Vec3i is a 3-component vector of int32, for AttributeType Vector3i.
type Vec3i [3]int32

// Vec3ui is a 3-component vector of uint32, for AttributeType Vector3ui.
type Vec3ui [3]uint32

// Vec4i is a 4-component vector of int32, for AttributeType Vector4i.
type Vec4i [4]int32

// Vec4ui is a 4-component vector of uint32, for AttributeType Vector4ui.
type Vec4ui [4]uint32

// Mat2x2 is a 2x2 matrix of float32, for AttributeType Matrix2x2.
type Mat2x2 [2][2]float32

// Mat2x3 is a 2x3 matrix of float32, for AttributeType Matrix2x3.
type Mat2x3 [2][3]float32

// Mat2x4 is a 2x4 matrix of float32, for AttributeType Matrix2x4.
type Mat2x4 [2][4]float32

// Mat3x2 is a 3x2 matrix of float32, for AttributeType Matrix3x2.
type Mat3x2 [3][2]float32

// Mat3x4 is a 3x4 matrix of float32, for AttributeType Matrix3x4.
type Mat3x4 [3][4]float32

// Mat4x2 is a 4x2 matrix of float32, for AttributeType Matrix4x2.
type Mat4x2 [4][2]float32

// Mat4x3 is a 4x3 matrix of float32, for AttributeType Matrix4x3.
type Mat4x3 [4][3]float32
