package core

// FloorDB is the level treated as silence by DBToCoefficient.
const FloorDB = -90
