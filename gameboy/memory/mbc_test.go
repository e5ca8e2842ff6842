package memory

import "testing"

func newMBC1Cart(t *testing.T, romBanks int) *Cartridge {
	t.Helper()
	data := make([]byte, romBanks*0x4000)
	data[cartridgeTypeAddress] = 0x03
	data[ramSizeAddress] = 0x03 // 32KB, 4 banks of 8KB
	switch romBanks {
	case 2:
		data[romSizeAddress] = 0x00
	case 4:
		data[romSizeAddress] = 0x01
	case 128:
		data[romSizeAddress] = 0x06
	default:
		t.Fatalf("unsupported test rom bank count %d", romBanks)
	}
	// stamp each bank with its own index at offset 0 so reads can be checked.
	for bank := 0; bank < romBanks; bank++ {
		data[bank*0x4000] = byte(bank)
	}
	cart, err := NewCartridge(data)
	if err != nil {
		t.Fatalf("NewCartridge: %v", err)
	}
	return cart
}

func TestMBC1ZeroBankQuirk(t *testing.T) {
	cart := newMBC1Cart(t, 4)
	mbc := newMBC1(cart)

	mbc.Write(0x2000, 0x00) // select bank 0 on the low register
	got := mbc.Read(0x4000)
	if got != 1 {
		t.Errorf("selecting low bank 0 read back bank %d; want bank 1 (zero-bank quirk)", got)
	}
}

func TestMBC1BankSelection(t *testing.T) {
	cart := newMBC1Cart(t, 4)
	mbc := newMBC1(cart)

	mbc.Write(0x2000, 0x03)
	if got := mbc.Read(0x4000); got != 3 {
		t.Errorf("bank select 3 read back bank %d; want 3", got)
	}
}

func TestMBC1HighBitsExtendROMBankInROMMode(t *testing.T) {
	cart := newMBC1Cart(t, 128)
	mbc := newMBC1(cart)

	mbc.Write(0x2000, 0x01)
	mbc.Write(0x4000, 0x01) // high bits = 1, romBankingMode by default
	if got := mbc.Read(0x4000); got != 0x21 {
		t.Errorf("bank = %d; want 0x21 (high bits extend low bank in ROM mode)", got)
	}
}

func TestMBC1RAMBankingAndEnable(t *testing.T) {
	cart := newMBC1Cart(t, 4)
	mbc := newMBC1(cart)

	mbc.Write(0xA000, 0x42) // RAM not yet enabled, write discarded
	if got := mbc.Read(0xA000); got != 0xFF {
		t.Errorf("Read with RAM disabled = %X; want 0xFF", got)
	}

	mbc.Write(0x0000, 0x0A) // enable RAM
	mbc.Write(0x6000, 0x01) // switch to RAM banking mode
	mbc.Write(0x4000, 0x02) // select RAM bank 2
	mbc.Write(0xA000, 0x77)

	if got := mbc.Read(0xA000); got != 0x77 {
		t.Errorf("Read back = %X; want 0x77", got)
	}

	mbc.Write(0x4000, 0x01) // switch to RAM bank 1, should not see bank 2's byte
	if got := mbc.Read(0xA000); got == 0x77 {
		t.Errorf("RAM bank 1 unexpectedly aliases bank 2's data")
	}
}

func TestNoMBCIgnoresROMWrites(t *testing.T) {
	data := make([]byte, 0x8000)
	data[0] = 0xAB
	cart, err := NewCartridge(data)
	if err != nil {
		t.Fatalf("NewCartridge: %v", err)
	}
	mbc := newNoMBC(cart)
	mbc.Write(0x0000, 0xFF)
	if got := mbc.Read(0x0000); got != 0xAB {
		t.Errorf("Read = %X; want 0xAB (ROM write should be a no-op)", got)
	}
}
