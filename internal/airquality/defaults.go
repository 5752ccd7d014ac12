package airquality

// defaultBands mirrors the dashboard legend. Colors are opaque display tokens.
var defaultBands = map[string][]RawBand{
	"AQI": {
		{Name: "Good", Color: "#268504", Range: "0-50"},
		{Name: "Satisfactory", Color: "#42e607", Range: "51-100"},
		{Name: "Moderate", Color: "#edcd3e", Range: "101-150"},
		{Name: "Unhealthy for Sensitive Groups", Color: "#d18306", Range: "151-200"},
		{Name: "Unhealthy", Color: "#e60b0b", Range: "201-300"},
		{Name: "Very Unhealthy", Color: "#9307de", Range: "301-400"},
		{Name: "Hazardous", Color: "#910101", Range: "401+"},
	},
	"O3": {
		{Name: "Good", Color: "#268504", Range: "0-65 µg/m³"},
		{Name: "Satisfactory", Color: "#42e607", Range: "65.1-130 µg/m³"},
		{Name: "Moderate", Color: "#edcd3e", Range: "130.1-195 µg/m³"},
		{Name: "Unhealthy for Sensitive Groups", Color: "#d18306", Range: "195.1-260 µg/m³"},
		{Name: "Unhealthy", Color: "#e60b0b", Range: "260.1-450 µg/m³"},
		{Name: "Very Unhealthy", Color: "#9307de", Range: "450.1-550 µg/m³"},
		{Name: "Hazardous", Color: "#910101", Range: "550.1+ µg/m³"},
	},
	"CO": {
		{Name: "Good", Color: "#268504", Range: "0-2.5 mg/m³"},
		{Name: "Satisfactory", Color: "#42e607", Range: "2.6-5 mg/m³"},
		{Name: "Moderate", Color: "#edcd3e", Range: "5.1-7.5 mg/m³"},
		{Name: "Unhealthy for Sensitive Groups", Color: "#d18306", Range: "7.6-10 mg/m³"},
		{Name: "Unhealthy", Color: "#e60b0b", Range: "10.1-25 mg/m³"},
		{Name: "Very Unhealthy", Color: "#9307de", Range: "25.1-40 mg/m³"},
		{Name: "Hazardous", Color: "#910101", Range: "40.1+ mg/m³"},
	},
	"SO2": {
		{Name: "Good", Color: "#268504", Range: "0-60 µg/m³"},
		{Name: "Satisfactory", Color: "#42e607", Range: "60.1-120 µg/m³"},
		{Name: "Moderate", Color: "#edcd3e", Range: "120.1-220 µg/m³"},
		{Name: "Unhealthy for Sensitive Groups", Color: "#d18306", Range: "220.1-320 µg/m³"},
		{Name: "Unhealthy", Color: "#e60b0b", Range: "320.1-800 µg/m³"},
		{Name: "Very Unhealthy", Color: "#9307de", Range: "800.1-1600 µg/m³"},
		{Name: "Hazardous", Color: "#910101", Range: "1600.1+ µg/m³"},
	},
	"NO2": {
		{Name: "Good", Color: "#268504", Range: "0-40 µg/m³"},
		{Name: "Satisfactory", Color: "#42e607", Range: "40.1-80 µg/m³"},
		{Name: "Moderate", Color: "#edcd3e", Range: "80.1-130 µg/m³"},
		{Name: "Unhealthy for Sensitive Groups", Color: "#d18306", Range: "130.1-180 µg/m³"},
		{Name: "Unhealthy", Color: "#e60b0b", Range: "180.1-380 µg/m³"},
		{Name: "Very Unhealthy", Color: "#9307de", Range: "380.1-580 µg/m³"},
		{Name: "Hazardous", Color: "#910101", Range: "580.1+ µg/m³"},
	},
	"PM10": {
		{Name: "Good", Color: "#268504", Range: "0-75 µg/m³"},
		{Name: "Satisfactory", Color: "#42e607", Range: "75.1-150 µg/m³"},
		{Name: "Moderate", Color: "#edcd3e", Range: "150.1-250 µg/m³"},
		{Name: "Unhealthy for Sensitive Groups", Color: "#d18306", Range: "250.1-350 µg/m³"},
		{Name: "Unhealthy", Color: "#e60b0b", Range: "350.1-450 µg/m³"},
		{Name: "Very Unhealthy", Color: "#9307de", Range: "450.1-550 µg/m³"},
		{Name: "Hazardous", Color: "#910101", Range: "550.1+ µg/m³"},
	},
	"PM25": {
		{Name: "Good", Color: "#268504", Range: "0-15 µg/m³"},
		{Name: "Satisfactory", Color: "#42e607", Range: "15.1-35 µg/m³"},
		{Name: "Moderate", Color: "#edcd3e", Range: "35.1-70 µg/m³"},
		{Name: "Unhealthy for Sensitive Groups", Color: "#d18306", Range: "70.1-150 µg/m³"},
		{Name: "Unhealthy", Color: "#e60b0b", Range: "150.1-250 µg/m³"},
		{Name: "Very Unhealthy", Color: "#9307de", Range: "250.1-350 µg/m³"},
		{Name: "Hazardous", Color: "#910101", Range: "350.1+ µg/m³"},
	},
	"Temp": {
		{Name: "Cold", Color: "#0066cc", Range: "< 10°C"},
		{Name: "Cool", Color: "#0099ff", Range: "10-20°C"},
		{Name: "Mild", Color: "#00ccff", Range: "20-25°C"},
		{Name: "Warm", Color: "#ffcc00", Range: "25-30°C"},
		{Name: "Hot", Color: "#ff6600", Range: "30-35°C"},
		{Name: "Very Hot", Color: "#cc0000", Range: "> 35°C"},
	},
	"RH": {
		{Name: "Very Dry", Color: "#cc6600", Range: "< 30%"},
		{Name: "Dry", Color: "#ff9900", Range: "30-50%"},
		{Name: "Moderate", Color: "#ffff00", Range: "50-60%"},
		{Name: "Comfortable", Color: "#00ff00", Range: "60-70%"},
		{Name: "Humid", Color: "#00ccff", Range: "70-80%"},
		{Name: "Very Humid", Color: "#0066cc", Range: "> 80%"},
	},
	"BP": {
		{Name: "Low", Color: "#cc0000", Range: "< 1000 hPa"},
		{Name: "Below Normal", Color: "#ff6600", Range: "1000-1010 hPa"},
		{Name: "Normal", Color: "#00ff00", Range: "1010-1020 hPa"},
		{Name: "Above Normal", Color: "#0099ff", Range: "1020-1030 hPa"},
		{Name: "High", Color: "#0066cc", Range: "1030-1040 hPa"},
		{Name: "Very High", Color: "#0000cc", Range: "> 1040 hPa"},
	},
	"Rain": {
		{Name: "None", Color: "#ffffff", Range: "0 mm"},
		{Name: "Light", Color: "#00ccff", Range: "0.1-2.5 mm"},
		{Name: "Moderate", Color: "#0099ff", Range: "2.6-7.5 mm"},
		{Name: "Heavy", Color: "#0066cc", Range: "7.6-15 mm"},
		{Name: "Very Heavy", Color: "#0033cc", Range: "15.1-30 mm"},
		{Name: "Extreme", Color: "#0000cc", Range: "> 30 mm"},
	},
	"WS": {
		{Name: "Calm", Color: "#00ff00", Range: "0-1 m/s"},
		{Name: "Light", Color: "#ffff00", Range: "1-3 m/s"},
		{Name: "Moderate", Color: "#ffcc00", Range: "3-5 m/s"},
		{Name: "Fresh", Color: "#ff9900", Range: "5-8 m/s"},
		{Name: "Strong", Color: "#ff6600", Range: "8-12 m/s"},
		{Name: "Very Strong", Color: "#cc0000", Range: "> 12 m/s"},
	},
	"WD": {
		{Name: "N", Color: "#ff0000", Range: "0-22.5°"},
		{Name: "NE", Color: "#ff6600", Range: "22.6-67.5°"},
		{Name: "E", Color: "#ffff00", Range: "67.6-112.5°"},
		{Name: "SE", Color: "#00ff00", Range: "112.6-157.5°"},
		{Name: "S", Color: "#00ccff", Range: "157.6-202.5°"},
		{Name: "SW", Color: "#0066cc", Range: "202.6-247.5°"},
		{Name: "W", Color: "#0000cc", Range: "247.6-292.5°"},
		{Name: "NW", Color: "#6600cc", Range: "292.6-337.5°"},
	},
	"NO": {
		{Name: "Good", Color: "#268504", Range: "0-40 µg/m³"},
		{Name: "Satisfactory", Color: "#42e607", Range: "40.1-80 µg/m³"},
		{Name: "Moderate", Color: "#edcd3e", Range: "80.1-130 µg/m³"},
		{Name: "Unhealthy for Sensitive Groups", Color: "#d18306", Range: "130.1-180 µg/m³"},
		{Name: "Unhealthy", Color: "#e60b0b", Range: "180.1-380 µg/m³"},
		{Name: "Very Unhealthy", Color: "#9307de", Range: "380.1-580 µg/m³"},
		{Name: "Hazardous", Color: "#910101", Range: "580.1+ µg/m³"},
	},
	"NOX": {
		{Name: "Good", Color: "#268504", Range: "0-40 µg/m³"},
		{Name: "Satisfactory", Color: "#42e607", Range: "40.1-80 µg/m³"},
		{Name: "Moderate", Color: "#edcd3e", Range: "80.1-130 µg/m³"},
		{Name: "Unhealthy for Sensitive Groups", Color: "#d18306", Range: "130.1-180 µg/m³"},
		{Name: "Unhealthy", Color: "#e60b0b", Range: "180.1-380 µg/m³"},
		{Name: "Very Unhealthy", Color: "#9307de", Range: "380.1-580 µg/m³"},
		{Name: "Hazardous", Color: "#910101", Range: "580.1+ µg/m³"},
	},
	"SR": {
		{Name: "Low", Color: "#00ff00", Range: "0-100 W/m²"},
		{Name: "Moderate", Color: "#ffff00", Range: "100-200 W/m²"},
		{Name: "High", Color: "#ffcc00", Range: "200-400 W/m²"},
		{Name: "Very High", Color: "#ff6600", Range: "400-800 W/m²"},
		{Name: "Extreme", Color: "#ff0000", Range: "800-1200 W/m²"},
		{Name: "Dangerous", Color: "#cc0000", Range: "> 1200 W/m²"},
	},
}

// DefaultTables returns freshly parsed built-in category tables.
func DefaultTables() Tables {
	t, err := BuildTables(defaultBands)
	if err != nil {
		panic("airquality: built-in category tables: " + err.Error())
	}
	return t
}
