package qrcode

import "fmt"

// CRC16-CCITT, polynomial 0x1021, initial value 0xFFFF.
const (
	crcPolynomial = 0x1021
	crcInitial    = 0xFFFF
)

func crc16(data []byte) uint16 {
	crc := uint16(crcInitial)
	for _, b := range data {
		crc ^= uint16(b) << 8
		for i := 0; i < 8; i++ {
			if crc&0x8000 != 0 {
				crc = (crc << 1) ^ crcPolynomial
			} else {
				crc <<= 1
			}
		}
	}
	return crc
}

// Checksum returns the 4-digit uppercase hex CRC of s.
func Checksum(s string) string {
	return fmt.Sprintf("%04X", crc16([]byte(s)))
}
