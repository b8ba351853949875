package builtins

import (
	"math"

	"github.com/nkanaev/msbasic/internal/interp/runtime"
)

// conRnd1 and conRnd2 are the multiplier/addend constants from the
// historical 6502 BASIC ROM's RND routine, kept bit-for-bit so that
// seeded RND sequences match the historical output exactly.
var conRnd1 = [5]byte{0x98, 0x35, 0x44, 0x7A, 0x00}
var conRnd2 = [5]byte{0x68, 0x28, 0xB1, 0x46, 0x00}

// msbasToDouble converts a 5-byte MS BASIC float (exponent, then 4
// mantissa bytes with an implied leading 1 bit) to a double.
func msbasToDouble(f [5]byte) float64 {
	if f[0] == 0 {
		return 0
	}
	m := (uint32(f[1]|0x80) << 24) | (uint32(f[2]) << 16) | (uint32(f[3]) << 8) | uint32(f[4])
	result := float64(m) / 4294967296.0
	return math.Ldexp(result, int(f[0])-128)
}

// doubleToMsbas converts a double to the 5-byte MS BASIC float layout.
func doubleToMsbas(d float64) [5]byte {
	var f [5]byte
	if d == 0 {
		return f
	}
	sign := byte(0)
	if d < 0 {
		sign = 0x80
	}
	d = math.Abs(d)
	mant, exp := math.Frexp(d)
	f[0] = byte(exp + 128)
	m := uint32(mant * 4294967296.0)
	f[1] = byte((m>>24)&0x7F) | sign
	f[2] = byte(m >> 16)
	f[3] = byte(m >> 8)
	f[4] = byte(m)
	return f
}

// msbasFMult multiplies fac by arg in place using the exact shift-and-add
// sequence the 6502 ROM's FMULT/MLTPLY performs, including its
// byte-at-a-time carry/shift quirks.
func msbasFMult(fac *[5]byte, arg [5]byte, ov *byte) {
	if fac[0] == 0 || arg[0] == 0 {
		*fac = [5]byte{}
		*ov = 0
		return
	}

	newExp := int(fac[0]) + int(arg[0]) - 128
	if newExp <= 0 {
		*fac = [5]byte{}
		*ov = 0
		return
	}
	if newExp > 255 {
		newExp = 255
	}

	argho := arg[1] | 0x80
	argmoh := arg[2]
	argmo := arg[3]
	arglo := arg[4]

	facho := fac[1] | 0x80
	facmoh := fac[2]
	facmo := fac[3]
	faclo := fac[4]
	facov := *ov

	var resho, resmoh, resmo, reslo, resOv byte
	var carry byte

	facBytes := [5]byte{facov, faclo, facmo, facmoh, facho}

	for i := 0; i < 5; i++ {
		multByte := facBytes[i]
		isFacho := i == 4

		if !isFacho && multByte == 0 {
			resOv = reslo
			reslo = resmo
			resmo = resmoh
			resmoh = resho
			resho = 0

			a := 8 + int(carry)
			newCarry := 0
			if a >= 256 {
				newCarry = 1
			}
			a &= 0xFF
			result := a - 8 - (1 - newCarry)
			if result < 0 {
				newCarry = 0
			} else {
				newCarry = 1
			}

			if newCarry != 0 {
				carry = 0
			} else {
				c := (resho >> 7) & 1
				resho = resho << 1
				if c != 0 {
					resho++
				}
				nc := resho & 1
				resho = (resho >> 1) | (c << 7)
				c = nc

				nc = resho & 1
				resho = (resho >> 1) | (c << 7)
				c = nc

				nc = resmoh & 1
				resmoh = (resmoh >> 1) | (c << 7)
				c = nc

				nc = resmo & 1
				resmo = (resmo >> 1) | (c << 7)
				c = nc

				nc = reslo & 1
				reslo = (reslo >> 1) | (c << 7)
				c = nc

				resOv = (resOv >> 1) | (c << 7)
				carry = 0
			}
			continue
		}

		a := multByte
		carry = a & 1
		a = (a >> 1) | 0x80

		for {
			y := a

			if carry != 0 {
				sum := uint16(reslo) + uint16(arglo)
				reslo = byte(sum)
				carry = byte(sum >> 8)

				sum = uint16(resmo) + uint16(argmo) + uint16(carry)
				resmo = byte(sum)
				carry = byte(sum >> 8)

				sum = uint16(resmoh) + uint16(argmoh) + uint16(carry)
				resmoh = byte(sum)
				carry = byte(sum >> 8)

				sum = uint16(resho) + uint16(argho) + uint16(carry)
				resho = byte(sum)
				carry = byte(sum >> 8)
			} else {
				carry = 0
			}

			var newCarry byte

			newCarry = resho & 1
			if carry != 0 {
				resho = (resho >> 1) | 0x80
			} else {
				resho = resho >> 1
			}
			carry = newCarry

			newCarry = resmoh & 1
			if carry != 0 {
				resmoh = (resmoh >> 1) | 0x80
			} else {
				resmoh = resmoh >> 1
			}
			carry = newCarry

			newCarry = resmo & 1
			if carry != 0 {
				resmo = (resmo >> 1) | 0x80
			} else {
				resmo = resmo >> 1
			}
			carry = newCarry

			newCarry = reslo & 1
			if carry != 0 {
				reslo = (reslo >> 1) | 0x80
			} else {
				reslo = reslo >> 1
			}
			carry = newCarry

			newCarry = resOv & 1
			if carry != 0 {
				resOv = (resOv >> 1) | 0x80
			} else {
				resOv = resOv >> 1
			}

			carry = y & 1
			a = y >> 1
			if a == 0 {
				break
			}
		}
	}

	for newExp > 0 && resho&0x80 == 0 {
		c := (resOv >> 7) & 1
		resOv = resOv << 1

		newCarry := (reslo >> 7) & 1
		reslo = (reslo << 1) | c
		c = newCarry

		newCarry = (resmo >> 7) & 1
		resmo = (resmo << 1) | c
		c = newCarry

		newCarry = (resmoh >> 7) & 1
		resmoh = (resmoh << 1) | c
		c = newCarry

		resho = (resho << 1) | c

		newExp--
	}

	if newExp <= 0 {
		*fac = [5]byte{}
		*ov = 0
		return
	}

	fac[0] = byte(newExp)
	fac[1] = resho & 0x7F
	fac[2] = resmoh
	fac[3] = resmo
	fac[4] = reslo
	*ov = resOv
}

// msbasFAdd adds arg into fac in place using 40-bit extended-precision
// integer arithmetic, mirroring the ROM's FADD.
func msbasFAdd(fac *[5]byte, arg [5]byte, ov *byte) {
	if arg[0] == 0 {
		return
	}
	if fac[0] == 0 {
		*fac = arg
		*ov = 0
		return
	}

	m1 := (((uint64(fac[1]|0x80) << 24) | (uint64(fac[2]) << 16) | (uint64(fac[3]) << 8) | uint64(fac[4])) << 8) | uint64(*ov)
	m2 := ((uint64(arg[1]|0x80) << 24) | (uint64(arg[2]) << 16) | (uint64(arg[3]) << 8) | uint64(arg[4])) << 8

	exp1 := int(fac[0])
	exp2 := int(arg[0])
	expDiff := exp1 - exp2

	if expDiff > 64 {
		return
	}
	if expDiff < -64 {
		*fac = arg
		*ov = 0
		return
	}

	if expDiff > 0 {
		m2 >>= uint(expDiff)
	} else if expDiff < 0 {
		m1 >>= uint(-expDiff)
		exp1 = exp2
	}

	sum := m1 + m2
	if sum >= (1 << 40) {
		sum >>= 1
		exp1++
	}

	result := uint32(sum >> 8)
	*ov = byte(sum)

	for exp1 > 0 && result&0x80000000 == 0 && result != 0 {
		result = (result << 1) | uint32((*ov)>>7)
		*ov <<= 1
		exp1--
	}

	if exp1 <= 0 || exp1 > 255 || result == 0 {
		*fac = [5]byte{}
		*ov = 0
		return
	}

	fac[0] = byte(exp1)
	fac[1] = byte(result>>24) & 0x7F
	fac[2] = byte(result >> 16)
	fac[3] = byte(result >> 8)
	fac[4] = byte(result)
}

// rnd implements RND(x): x<0 reseeds from |x|; x==0 replays the current
// seed; x>0 advances the sequence by one step. The update itself
// (multiply-add, byte swap, renormalize) keeps the ROM's exact order of
// operations so seeded sequences reproduce the historical output.
func rnd(state *runtime.State, x float64) float64 {
	var fac [5]byte
	var ov byte

	switch {
	case x < 0:
		fac = doubleToMsbas(math.Abs(x))
		ov = 0
	case x == 0:
		return msbasToDouble(state.Rnd.Bytes)
	default:
		fac = state.Rnd.Bytes
		ov = 0
		msbasFMult(&fac, conRnd1, &ov)
		msbasFAdd(&fac, conRnd2, &ov)
	}

	fac[1] |= 0x80
	fac[1], fac[4] = fac[4], fac[1]
	fac[2], fac[3] = fac[3], fac[2]

	ov = fac[0]
	fac[0] = 0x80

	for fac[0] > 0 && fac[1]&0x80 == 0 {
		carry := (ov >> 7) & 1
		ov <<= 1

		newLo := (fac[4] << 1) | carry
		carry = (fac[4] >> 7) & 1

		newMo := (fac[3] << 1) | carry
		carry = (fac[3] >> 7) & 1

		newMoh := (fac[2] << 1) | carry
		carry = (fac[2] >> 7) & 1

		newHo := (fac[1] << 1) | carry

		fac[4] = newLo
		fac[3] = newMo
		fac[2] = newMoh
		fac[1] = newHo

		fac[0]--
	}

	if fac[0] == 0 {
		fac = [5]byte{}
		ov = 0
	}

	if ov&0x80 != 0 {
		fac[4]++
		if fac[4] == 0 {
			fac[3]++
			if fac[3] == 0 {
				fac[2]++
				if fac[2] == 0 {
					fac[1]++
					if fac[1] == 0 {
						fac[1] = 0x80
						fac[0]++
					}
				}
			}
		}
	}

	fac[1] &= 0x7F
	state.Rnd.Bytes = fac

	return msbasToDouble(state.Rnd.Bytes)
}
