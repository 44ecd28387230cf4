package uds

import "fmt"

// Negative response codes
const (
	NRCGeneralReject                          byte = 0x10
	NRCServiceNotSupported                    byte = 0x11
	NRCSubFunctionNotSupported                byte = 0x12
	NRCIncorrectMessageLengthOrInvalidFormat  byte = 0x13
	NRCResponseTooLong                        byte = 0x14
	NRCBusyRepeatRequest                      byte = 0x21
	NRCConditionsNotCorrect                   byte = 0x22
	NRCRequestSequenceError                   byte = 0x24
	NRCNoResponseFromSubnetComponent          byte = 0x25
	NRCFailurePreventsExecution               byte = 0x26
	NRCRequestOutOfRange                      byte = 0x31
	NRCSecurityAccessDenied                   byte = 0x33
	NRCInvalidKey                             byte = 0x35
	NRCExceededNumberOfAttempts               byte = 0x36
	NRCRequiredTimeDelayNotExpired            byte = 0x37
	NRCUploadDownloadNotAccepted              byte = 0x70
	NRCTransferDataSuspended                  byte = 0x71
	NRCGeneralProgrammingFailure              byte = 0x72
	NRCWrongBlockSequenceCounter              byte = 0x73
	NRCResponsePending                        byte = 0x78
	NRCSubFunctionNotSupportedInActiveSession byte = 0x7E
	NRCServiceNotSupportedInActiveSession     byte = 0x7F
	NRCRPMTooHigh                             byte = 0x81
	NRCRPMTooLow                              byte = 0x82
	NRCEngineIsRunning                        byte = 0x83
	NRCEngineIsNotRunning                     byte = 0x84
	NRCEngineRunTimeTooLow                    byte = 0x85
	NRCTemperatureTooHigh                     byte = 0x86
	NRCTemperatureTooLow                      byte = 0x87
	NRCVehicleSpeedTooHigh                    byte = 0x88
	NRCVehicleSpeedTooLow                     byte = 0x89
	NRCThrottlePedalTooHigh                   byte = 0x8A
	NRCThrottlePedalTooLow                    byte = 0x8B
	NRCTransmissionRangeNotInNeutral          byte = 0x8C
	NRCTransmissionRangeNotInGear             byte = 0x8D
	NRCBrakeSwitchNotClosed                   byte = 0x8F
	NRCShifterLeverNotInPark                  byte = 0x90
	NRCTorqueConverterClutchLocked            byte = 0x91
	NRCVoltageTooHigh                         byte = 0x92
	NRCVoltageTooLow                          byte = 0x93
)

var nrcNames = map[byte]string{
	NRCGeneralReject:                          "General reject",
	NRCServiceNotSupported:                    "Service not supported",
	NRCSubFunctionNotSupported:                "Sub-function not supported",
	NRCIncorrectMessageLengthOrInvalidFormat:  "Incorrect message length or invalid format",
	NRCResponseTooLong:                        "Response too long",
	NRCBusyRepeatRequest:                      "Busy repeat request",
	NRCConditionsNotCorrect:                   "Conditions not correct",
	NRCRequestSequenceError:                   "Request sequence error",
	NRCNoResponseFromSubnetComponent:          "No response from subnet component",
	NRCFailurePreventsExecution:               "Failure prevents execution of requested action",
	NRCRequestOutOfRange:                      "Request out of range",
	NRCSecurityAccessDenied:                   "Security access denied",
	NRCInvalidKey:                             "Invalid key",
	NRCExceededNumberOfAttempts:               "Exceeded number of attempts",
	NRCRequiredTimeDelayNotExpired:            "Required time delay not expired",
	NRCUploadDownloadNotAccepted:              "Upload/download not accepted",
	NRCTransferDataSuspended:                  "Transfer data suspended",
	NRCGeneralProgrammingFailure:              "General programming failure",
	NRCWrongBlockSequenceCounter:              "Wrong block sequence counter",
	NRCResponsePending:                        "Response pending",
	NRCSubFunctionNotSupportedInActiveSession: "Sub-function not supported in active session",
	NRCServiceNotSupportedInActiveSession:     "Service not supported in active session",
	NRCRPMTooHigh:                             "RPM too high",
	NRCRPMTooLow:                              "RPM too low",
	NRCEngineIsRunning:                        "Engine is running",
	NRCEngineIsNotRunning:                     "Engine is not running",
	NRCEngineRunTimeTooLow:                    "Engine run time too low",
	NRCTemperatureTooHigh:                     "Temperature too high",
	NRCTemperatureTooLow:                      "Temperature too low",
	NRCVehicleSpeedTooHigh:                    "Vehicle speed too high",
	NRCVehicleSpeedTooLow:                     "Vehicle speed too low",
	NRCThrottlePedalTooHigh:                   "Throttle/pedal too high",
	NRCThrottlePedalTooLow:                    "Throttle/pedal too low",
	NRCTransmissionRangeNotInNeutral:          "Transmission range not in neutral",
	NRCTransmissionRangeNotInGear:             "Transmission range not in gear",
	NRCBrakeSwitchNotClosed:                   "Brake switch not closed",
	NRCShifterLeverNotInPark:                  "Shifter lever not in park",
	NRCTorqueConverterClutchLocked:            "Torque converter clutch locked",
	NRCVoltageTooHigh:                         "Voltage too high",
	NRCVoltageTooLow:                          "Voltage too low",
}

// DescribeNRC never fails, unknown codes get a generic description
func DescribeNRC(code byte) string {
	if name, ok := nrcNames[code]; ok {
		return name
	}
	return fmt.Sprintf("Unknown NRC: 0x%02X", code)
}
