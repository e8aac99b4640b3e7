package xmac

// Addr 表示 48 位 MAC 地址（EUI-48/MAC-48）的字节形式。
//
// Addr 是不可变值类型：
//   - 零值表示无效地址，IsValid() 返回 false
//   - 可直接比较（==）和用作 map key
//
// 通过 [Canonical.Addr] 或 [AddrFrom6] 创建。
type Addr struct {
	bytes [6]byte
}

// AddrFrom6 从 6 字节数组创建 MAC 地址。
func AddrFrom6(b [6]byte) Addr {
	return Addr{bytes: b}
}

// Bytes 返回 MAC 地址的字节副本。
func (a Addr) Bytes() [6]byte {
	return a.bytes
}

// IsValid 报告 a 是否为非零地址。
func (a Addr) IsValid() bool {
	return a != Addr{}
}

// IsUnicast 报告 a 是否为单播地址（第一字节 bit 0 为 0）。
func (a Addr) IsUnicast() bool {
	return a.IsValid() && (a.bytes[0]&0x01) == 0
}

// IsMulticast 报告 a 是否为多播地址（含广播）。
func (a Addr) IsMulticast() bool {
	return a.IsValid() && (a.bytes[0]&0x01) == 1
}

// IsBroadcast 报告 a 是否为 ff:ff:ff:ff:ff:ff。
func (a Addr) IsBroadcast() bool {
	return a.bytes == [6]byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff}
}

// IsLocallyAdministered 报告 a 是否为本地管理地址（LAA）。
// 虚拟机、容器以及手机的随机化 MAC 通常是 LAA，这类地址没有注册厂商。
func (a Addr) IsLocallyAdministered() bool {
	return a.IsValid() && (a.bytes[0]&0x02) == 0x02
}

// OUI 返回前 3 字节。无效地址返回零值。
func (a Addr) OUI() [3]byte {
	if !a.IsValid() {
		return [3]byte{}
	}
	return [3]byte{a.bytes[0], a.bytes[1], a.bytes[2]}
}
