package entity

import (
	"fmt"
	"strings"
)

// MaxNameLength mahsulot nomining maksimal uzunligi (belgilar soni)
const MaxNameLength = 49

// Category mahsulot turi
type Category int

const (
	RawMaterial Category = iota
	FinishedGood
)

// Tag fayl formatidagi butun son belgisi
func (c Category) Tag() int {
	return int(c)
}

// String kategoriya nomi (CSV va ekranlar uchun)
func (c Category) String() string {
	switch c {
	case RawMaterial:
		return "Raw Material"
	case FinishedGood:
		return "Finished Good"
	default:
		return fmt.Sprintf("Category(%d)", int(c))
	}
}

// Valid kategoriya ma'lum qiymatlardan biri ekanligini tekshirish
func (c Category) Valid() bool {
	switch c {
	case RawMaterial, FinishedGood:
		return true
	default:
		return false
	}
}

// ParseCategoryTag fayldagi belgidan kategoriyani olish
func ParseCategoryTag(tag int) (Category, error) {
	switch tag {
	case 0:
		return RawMaterial, nil
	case 1:
		return FinishedGood, nil
	default:
		return 0, fmt.Errorf("unknown category tag: %d", tag)
	}
}

// ParseCategory matndan kategoriyani aniqlash ("raw", "Finished Good", "1" ...)
func ParseCategory(s string) (Category, error) {
	norm := strings.ToLower(strings.TrimSpace(s))
	norm = strings.NewReplacer("_", " ", "-", " ").Replace(norm)
	switch norm {
	case "0", "raw", "raw material", "rawmaterial", "material":
		return RawMaterial, nil
	case "1", "finished", "finished good", "finishedgood", "good", "product":
		return FinishedGood, nil
	default:
		return 0, fmt.Errorf("unknown category: %q", s)
	}
}

// Product ombordagi mahsulot yozuvi
type Product struct {
	ID       int
	Name     string
	Quantity int
	Price    float64
	Category Category
}

var nameReplacer = strings.NewReplacer(",", " ", "\n", " ", "\r", " ")

// SanitizeName fayl formatini buzadigan belgilarni almashtirish va qisqartirish
func SanitizeName(name string) string {
	return TruncateName(nameReplacer.Replace(name))
}

// TruncateName nomni MaxNameLength gacha qisqartirish
func TruncateName(name string) string {
	runes := []rune(name)
	if len(runes) <= MaxNameLength {
		return name
	}
	return string(runes[:MaxNameLength])
}
