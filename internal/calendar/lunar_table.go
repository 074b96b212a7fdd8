package calendar

import (
	"maps"
	"time"
)

// lunarNewYears lists the first day of the lunar year for 1900-2100,
// as published by the Hong Kong Observatory.
var lunarNewYears = map[int]Boundary{
	// 1900-1929
	1900: {time.January, 31}, 1901: {time.February, 19}, 1902: {time.February, 8}, 1903: {time.January, 29}, 1904: {time.February, 16},
	1905: {time.February, 4}, 1906: {time.January, 25}, 1907: {time.February, 13}, 1908: {time.February, 2}, 1909: {time.January, 22},
	1910: {time.February, 10}, 1911: {time.January, 30}, 1912: {time.February, 18}, 1913: {time.February, 6}, 1914: {time.January, 26},
	1915: {time.February, 14}, 1916: {time.February, 3}, 1917: {time.January, 23}, 1918: {time.February, 11}, 1919: {time.February, 1},
	1920: {time.February, 20}, 1921: {time.February, 8}, 1922: {time.January, 28}, 1923: {time.February, 16}, 1924: {time.February, 5},
	1925: {time.January, 24}, 1926: {time.February, 13}, 1927: {time.February, 2}, 1928: {time.January, 23}, 1929: {time.February, 10},
	// 1930-1959
	1930: {time.January, 30}, 1931: {time.February, 17}, 1932: {time.February, 6}, 1933: {time.January, 26}, 1934: {time.February, 14},
	1935: {time.February, 4}, 1936: {time.January, 24}, 1937: {time.February, 11}, 1938: {time.January, 31}, 1939: {time.February, 19},
	1940: {time.February, 8}, 1941: {time.January, 27}, 1942: {time.February, 15}, 1943: {time.February, 5}, 1944: {time.January, 25},
	1945: {time.February, 13}, 1946: {time.February, 2}, 1947: {time.January, 22}, 1948: {time.February, 10}, 1949: {time.January, 29},
	1950: {time.February, 17}, 1951: {time.February, 6}, 1952: {time.January, 27}, 1953: {time.February, 14}, 1954: {time.February, 3},
	1955: {time.January, 24}, 1956: {time.February, 12}, 1957: {time.January, 31}, 1958: {time.February, 18}, 1959: {time.February, 8},
	// 1960-1989
	1960: {time.January, 28}, 1961: {time.February, 15}, 1962: {time.February, 5}, 1963: {time.January, 25}, 1964: {time.February, 13},
	1965: {time.February, 2}, 1966: {time.January, 21}, 1967: {time.February, 9}, 1968: {time.January, 30}, 1969: {time.February, 17},
	1970: {time.February, 6}, 1971: {time.January, 27}, 1972: {time.February, 15}, 1973: {time.February, 3}, 1974: {time.January, 23},
	1975: {time.February, 11}, 1976: {time.January, 31}, 1977: {time.February, 18}, 1978: {time.February, 7}, 1979: {time.January, 28},
	1980: {time.February, 16}, 1981: {time.February, 5}, 1982: {time.January, 25}, 1983: {time.February, 13}, 1984: {time.February, 2},
	1985: {time.February, 20}, 1986: {time.February, 9}, 1987: {time.January, 29}, 1988: {time.February, 17}, 1989: {time.February, 6},
	// 1990-2019
	1990: {time.January, 27}, 1991: {time.February, 15}, 1992: {time.February, 4}, 1993: {time.January, 23}, 1994: {time.February, 10},
	1995: {time.January, 31}, 1996: {time.February, 19}, 1997: {time.February, 7}, 1998: {time.January, 28}, 1999: {time.February, 16},
	2000: {time.February, 5}, 2001: {time.January, 24}, 2002: {time.February, 12}, 2003: {time.February, 1}, 2004: {time.January, 22},
	2005: {time.February, 9}, 2006: {time.January, 29}, 2007: {time.February, 18}, 2008: {time.February, 7}, 2009: {time.January, 26},
	2010: {time.February, 14}, 2011: {time.February, 3}, 2012: {time.January, 23}, 2013: {time.February, 10}, 2014: {time.January, 31},
	2015: {time.February, 19}, 2016: {time.February, 8}, 2017: {time.January, 28}, 2018: {time.February, 16}, 2019: {time.February, 5},
	// 2020-2049
	2020: {time.January, 25}, 2021: {time.February, 12}, 2022: {time.February, 1}, 2023: {time.January, 22}, 2024: {time.February, 10},
	2025: {time.January, 29}, 2026: {time.February, 17}, 2027: {time.February, 6}, 2028: {time.January, 26}, 2029: {time.February, 13},
	2030: {time.February, 3}, 2031: {time.January, 23}, 2032: {time.February, 11}, 2033: {time.January, 31}, 2034: {time.February, 19},
	2035: {time.February, 8}, 2036: {time.January, 28}, 2037: {time.February, 15}, 2038: {time.February, 4}, 2039: {time.January, 24},
	2040: {time.February, 12}, 2041: {time.February, 1}, 2042: {time.January, 22}, 2043: {time.February, 10}, 2044: {time.January, 30},
	2045: {time.February, 17}, 2046: {time.February, 6}, 2047: {time.January, 26}, 2048: {time.February, 14}, 2049: {time.February, 2},
	// 2050-2079
	2050: {time.January, 23}, 2051: {time.February, 11}, 2052: {time.February, 1}, 2053: {time.February, 19}, 2054: {time.February, 8},
	2055: {time.January, 28}, 2056: {time.February, 15}, 2057: {time.February, 4}, 2058: {time.January, 24}, 2059: {time.February, 12},
	2060: {time.February, 2}, 2061: {time.January, 21}, 2062: {time.February, 9}, 2063: {time.January, 29}, 2064: {time.February, 17},
	2065: {time.February, 5}, 2066: {time.January, 26}, 2067: {time.February, 14}, 2068: {time.February, 3}, 2069: {time.January, 23},
	2070: {time.February, 11}, 2071: {time.January, 31}, 2072: {time.February, 19}, 2073: {time.February, 7}, 2074: {time.January, 27},
	2075: {time.February, 15}, 2076: {time.February, 5}, 2077: {time.January, 24}, 2078: {time.February, 12}, 2079: {time.February, 2},
	// 2080-2100
	2080: {time.January, 22}, 2081: {time.February, 9}, 2082: {time.January, 29}, 2083: {time.February, 17}, 2084: {time.February, 6},
	2085: {time.January, 26}, 2086: {time.February, 14}, 2087: {time.February, 3}, 2088: {time.January, 24}, 2089: {time.February, 10},
	2090: {time.January, 30}, 2091: {time.February, 18}, 2092: {time.February, 7}, 2093: {time.January, 27}, 2094: {time.February, 15},
	2095: {time.February, 5}, 2096: {time.January, 25}, 2097: {time.February, 12}, 2098: {time.February, 1}, 2099: {time.January, 21},
	2100: {time.February, 9},
}

// LunarNewYearTable returns a copy of the built-in table.
func LunarNewYearTable() map[int]Boundary {
	return maps.Clone(lunarNewYears)
}
