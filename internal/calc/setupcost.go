package calc

import (
	"sort"

	"github.com/shopspring/decimal"
)

// CompanyType is the legal form of a new UAE business.
type CompanyType string

const (
	LLC                  CompanyType = "llc"
	SoleEstablishment    CompanyType = "sole_establishment"
	Branch               CompanyType = "branch"
	RepresentativeOffice CompanyType = "representative_office"
	FreeZoneCompany      CompanyType = "freezone"
)

// Emirate identifiers accepted by SetupCost. Only Dubai has its own price
// column; every other emirate is priced as "other".
const (
	EmirateDubai = "dubai"
	EmirateOther = "other"
)

var knownEmirates = map[string]bool{
	EmirateDubai:     true,
	"abu_dhabi":      true,
	"sharjah":        true,
	"ajman":          true,
	"ras_al_khaimah": true,
	"fujairah":       true,
	"umm_al_quwain":  true,
	EmirateOther:     true,
}

type licenseFees struct {
	Dubai decimal.Decimal
	Other decimal.Decimal
}

func aed(n int64) decimal.Decimal { return decimal.NewFromInt(n) }

var licenseTable = map[CompanyType]licenseFees{
	LLC:                  {Dubai: aed(15000), Other: aed(12000)},
	SoleEstablishment:    {Dubai: aed(8000), Other: aed(6500)},
	Branch:               {Dubai: aed(20000), Other: aed(17000)},
	RepresentativeOffice: {Dubai: aed(10000), Other: aed(8500)},
	FreeZoneCompany:      {Dubai: aed(12500), Other: aed(10000)},
}

// AddOnPrices is the flat fee list for optional services.
var AddOnPrices = map[string]decimal.Decimal{
	"pro_services":               aed(5000),
	"bank_account":               aed(3000),
	"accounting_setup":           aed(4500),
	"vat_registration":           aed(2500),
	"corporate_tax_registration": aed(2000),
	"trademark":                  aed(7500),
	"legal_translation":          aed(1500),
	"ejari":                      aed(1000),
}

var (
	visaFeeFreeZone   = aed(4000)
	visaFeeStandard   = aed(3500)
	laborCardFee      = aed(500)
	medicalAndEIDFee  = aed(800)
	rentPerSqftDubai  = aed(100)
	rentPerSqftOther  = aed(80)
	fitOutPerSqft     = aed(150)
	utilityConnection = aed(2000)
	depositRate       = decimal.RequireFromString("0.10")
)

// MaxEmployees bounds the headcount a setup estimate accepts.
const MaxEmployees = 10000

// SetupCostInput is the setup cost form.
type SetupCostInput struct {
	CompanyType CompanyType
	Emirate     string
	Employees   int
	OfficeSqft  decimal.Decimal
	AddOns      []string
}

// SetupCostResult breaks the estimate into its four components.
type SetupCostResult struct {
	LicenseAndRegistration decimal.Decimal
	VisaAndLabor           decimal.Decimal
	OfficeSetup            decimal.Decimal
	Additional             decimal.Decimal
	Total                  decimal.Decimal
}

// SetupCost estimates the first-year cost of setting up a company.
func SetupCost(in SetupCostInput) (SetupCostResult, error) {
	if in.CompanyType == "" || in.Emirate == "" {
		return SetupCostResult{}, ErrInsufficientInput
	}
	fees, ok := licenseTable[in.CompanyType]
	if !ok {
		return SetupCostResult{}, ErrUnknownBusinessType
	}
	if !knownEmirates[in.Emirate] {
		return SetupCostResult{}, ErrUnknownEmirate
	}
	if in.Employees > MaxEmployees {
		return SetupCostResult{}, ErrTooManyEmployees
	}
	dubai := in.Emirate == EmirateDubai

	var res SetupCostResult
	if dubai {
		res.LicenseAndRegistration = fees.Dubai
	} else {
		res.LicenseAndRegistration = fees.Other
	}

	if in.Employees > 0 {
		visa := visaFeeStandard
		if in.CompanyType == FreeZoneCompany {
			visa = visaFeeFreeZone
		}
		perHead := visa.Add(laborCardFee).Add(medicalAndEIDFee)
		res.VisaAndLabor = perHead.Mul(decimal.NewFromInt(int64(in.Employees)))
	}

	if in.OfficeSqft.IsPositive() {
		rate := rentPerSqftOther
		if dubai {
			rate = rentPerSqftDubai
		}
		annualRent := in.OfficeSqft.Mul(rate).Mul(twelve)
		deposit := annualRent.Mul(depositRate)
		fitOut := in.OfficeSqft.Mul(fitOutPerSqft)
		res.OfficeSetup = deposit.Add(fitOut).Add(utilityConnection)
	}

	seen := make(map[string]bool, len(in.AddOns))
	for _, a := range in.AddOns {
		if seen[a] {
			continue
		}
		price, ok := AddOnPrices[a]
		if !ok {
			return SetupCostResult{}, ErrUnknownAddOn
		}
		seen[a] = true
		res.Additional = res.Additional.Add(price)
	}

	res.LicenseAndRegistration = Round2(res.LicenseAndRegistration)
	res.VisaAndLabor = Round2(res.VisaAndLabor)
	res.OfficeSetup = Round2(res.OfficeSetup)
	res.Additional = Round2(res.Additional)
	res.Total = res.LicenseAndRegistration.Add(res.VisaAndLabor).Add(res.OfficeSetup).Add(res.Additional)
	return res, nil
}

// CatalogEntry is one selectable option with its price.
type CatalogEntry struct {
	Key   string
	Dubai decimal.Decimal
	Other decimal.Decimal
}

// Catalog lists the options of the setup cost form.
type Catalog struct {
	CompanyTypes []CatalogEntry
	Emirates     []string
	AddOns       []CatalogEntry
}

// SetupCostCatalog returns the price tables in a stable order.
func SetupCostCatalog() Catalog {
	var c Catalog
	for t, f := range licenseTable {
		c.CompanyTypes = append(c.CompanyTypes, CatalogEntry{Key: string(t), Dubai: f.Dubai, Other: f.Other})
	}
	for e := range knownEmirates {
		c.Emirates = append(c.Emirates, e)
	}
	for k, p := range AddOnPrices {
		c.AddOns = append(c.AddOns, CatalogEntry{Key: k, Dubai: p, Other: p})
	}
	sort.Slice(c.CompanyTypes, func(i, j int) bool { return c.CompanyTypes[i].Key < c.CompanyTypes[j].Key })
	sort.Strings(c.Emirates)
	sort.Slice(c.AddOns, func(i, j int) bool { return c.AddOns[i].Key < c.AddOns[j].Key })
	return c
}
