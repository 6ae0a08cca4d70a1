// Package karatsuba multiplies arbitrary-precision naturals by recursive
// decomposition, combining three sub-products per level instead of four:
//
//	(x0 + x1·2^b)(y0 + y1·2^b) = z0 + z1·2^b + z2·2^(2b)
//
//	z2 = x1·y1
//	z0 = x0·y0
//	z1 = (x1+x0)(y1+y0) − z2 − z0
//
// Operands are ordered so that x ≤ y. Recursion stops once x fits in two
// bits. The split width b is half the bit length of the smaller operand by
// default (SplitSmaller); SplitLarger selects the textbook half-length of the
// larger operand.
//
// The computation is a pure function of its inputs. Options can enable
// fork-join evaluation of the three sub-products, a pre-order Trace of every
// level, progress callbacks and a debug log event.
package karatsuba
