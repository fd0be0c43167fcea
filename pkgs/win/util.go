package win

// htons converts a port to network byte order.
func htons(i uint16) uint16 {
	return (i>>8)&0xFF | (i&0xFF)<<8
}
