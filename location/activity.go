package location

// ActivityType is an activity detected by the device.
type ActivityType string

// Activity types, in the column order used by the extended CSV format.
const (
	ActivityUnknown              ActivityType = "UNKNOWN"
	ActivityStill                ActivityType = "STILL"
	ActivityTilting              ActivityType = "TILTING"
	ActivityOnFoot               ActivityType = "ON_FOOT"
	ActivityWalking              ActivityType = "WALKING"
	ActivityRunning              ActivityType = "RUNNING"
	ActivityInVehicle            ActivityType = "IN_VEHICLE"
	ActivityOnBicycle            ActivityType = "ON_BICYCLE"
	ActivityInRoadVehicle        ActivityType = "IN_ROAD_VEHICLE"
	ActivityInRailVehicle        ActivityType = "IN_RAIL_VEHICLE"
	ActivityInTwoWheelerVehicle  ActivityType = "IN_TWO_WHEELER_VEHICLE"
	ActivityInFourWheelerVehicle ActivityType = "IN_FOUR_WHEELER_VEHICLE"
)

// ActivityTypes lists every known activity type in column order.
var ActivityTypes = []ActivityType{
	ActivityUnknown,
	ActivityStill,
	ActivityTilting,
	ActivityOnFoot,
	ActivityWalking,
	ActivityRunning,
	ActivityInVehicle,
	ActivityOnBicycle,
	ActivityInRoadVehicle,
	ActivityInRailVehicle,
	ActivityInTwoWheelerVehicle,
	ActivityInFourWheelerVehicle,
}
