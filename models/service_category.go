package models

// Daftar kategori layanan yang boleh dipakai oleh Service.Category.
const (
	CategoryPlumbing            = "Plumbing"
	CategoryElectrical          = "Electrical"
	CategoryCleaning            = "Cleaning"
	CategoryBeauty              = "Beauty"
	CategoryACRepair            = "AC Repair"
	CategoryCarWash             = "Car Wash"
	CategoryHomeApplianceRepair = "Home Appliance Repair"
	CategoryGardening           = "Gardening"
	CategoryHousePainting       = "House Painting"
	CategoryPestControl         = "Pest Control"
	CategoryMovingServices      = "Moving Services"
	CategoryLocksmith           = "Locksmith"
	CategoryCarpentry           = "Carpentry"
	CategoryInteriorDesign      = "Interior Design"
	CategoryLaundry             = "Laundry"
	CategoryTutoring            = "Tutoring"
	CategoryPetCare             = "Pet Care"
	CategoryBabysitting         = "Babysitting"
	CategoryPersonalTraining    = "Personal Training"
	CategoryTailoring           = "Tailoring"
)

var serviceCategories = []string{
	CategoryPlumbing,
	CategoryElectrical,
	CategoryCleaning,
	CategoryBeauty,
	CategoryACRepair,
	CategoryCarWash,
	CategoryHomeApplianceRepair,
	CategoryGardening,
	CategoryHousePainting,
	CategoryPestControl,
	CategoryMovingServices,
	CategoryLocksmith,
	CategoryCarpentry,
	CategoryInteriorDesign,
	CategoryLaundry,
	CategoryTutoring,
	CategoryPetCare,
	CategoryBabysitting,
	CategoryPersonalTraining,
	CategoryTailoring,
}

// ServiceCategories returns a copy of the catalog in declaration order.
func ServiceCategories() []string {
	out := make([]string, len(serviceCategories))
	copy(out, serviceCategories)
	return out
}

func IsServiceCategory(name string) bool {
	for _, c := range serviceCategories {
		if c == name {
			return true
		}
	}
	return false
}
